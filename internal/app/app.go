package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/config"
	"github.com/quillpress/core/internal/database"
	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/pkg/jwt"
	"github.com/quillpress/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App bundles the HTTP engine with its backing services.
type App struct {
	cfg    *config.AppConfig
	logger *zap.Logger
	engine *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	server *http.Server
}

// New connects the backing stores, seeds the catalog data, and wires all
// routes.
func New(cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	if cfg.JWTSecret != "" {
		jwt.SetSecret(cfg.JWTSecret)
	} else {
		logger.Warn("jwt_secret not configured, using the built-in default")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	adminCreated, err := database.Seed(db)
	if err != nil {
		return nil, fmt.Errorf("seed failed: %w", err)
	}
	if adminCreated {
		logger.Warn("default administrator created, change its password",
			zap.String("username", "admin"))
	}

	// redis only backs rate limiting; the app runs without it
	rdb, err := redis.Connect(cfg.Redis.URLValue())
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(corsMiddleware(cfg))
	engine.MaxMultipartMemory = 8 << 20

	engine.Static("/uploads", cfg.UploadsDir)

	a := &App{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		db:     db,
		rdb:    rdb,
	}
	if err := a.registerRoutes(); err != nil {
		return nil, err
	}
	return a, nil
}

func corsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	return cors.New(corsCfg)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: a.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.Int("port", a.cfg.Port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	return a.server.Shutdown(shutdownCtx)
}
