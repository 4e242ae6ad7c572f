package app

import (
	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/modules/article"
	"github.com/quillpress/core/internal/modules/auth"
	"github.com/quillpress/core/internal/modules/comment"
	"github.com/quillpress/core/internal/modules/media"
	"github.com/quillpress/core/internal/modules/page"
	"github.com/quillpress/core/internal/modules/role"
	"github.com/quillpress/core/internal/modules/setting"
	"github.com/quillpress/core/internal/modules/taxonomy"
	"github.com/quillpress/core/internal/modules/user"
	"github.com/quillpress/core/internal/pkg/response"
)

func (a *App) registerRoutes() error {
	mediaSvc, err := media.NewService(a.cfg.UploadsDir, a.logger)
	if err != nil {
		return err
	}

	activitySvc := activity.NewService(a.db)
	articleSvc := article.NewService(a.db, mediaSvc, activitySvc, a.logger)
	pageSvc := page.NewService(a.db, activitySvc)
	commentSvc := comment.NewService(a.db, activitySvc)
	userSvc := user.NewService(a.db, activitySvc)
	roleSvc := role.NewService(a.db, activitySvc)
	settingSvc := setting.NewService(a.db, mediaSvc, activitySvc)
	taxonomySvc := taxonomy.NewService(a.db, activitySvc)
	authSvc := auth.NewService(a.db, activitySvc)

	api := a.engine.Group("/api")
	// actor resolution precedes the limiter so authenticated traffic skips it
	api.Use(middleware.OptionalAuth(a.db), middleware.RateLimit(a.rdb, a.logger))

	authMW := middleware.Auth(a.db)

	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	article.NewHandler(articleSvc).RegisterRoutes(api, authMW)
	page.NewHandler(pageSvc).RegisterRoutes(api, authMW)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
	role.NewHandler(roleSvc).RegisterRoutes(api, authMW)
	setting.NewHandler(settingSvc).RegisterRoutes(api, authMW)
	taxonomy.NewHandler(taxonomySvc).RegisterRoutes(api, authMW)
	media.NewHandler(mediaSvc).RegisterRoutes(api, authMW)
	activity.NewHandler(activitySvc).RegisterRoutes(api, authMW)

	a.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	a.engine.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
	return nil
}
