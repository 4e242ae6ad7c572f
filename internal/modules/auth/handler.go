package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/login", h.login)
	grp.GET("/me", authMW, h.me)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	token, user, err := h.service.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

// me reports the authenticated actor with its effective permissions.
func (h *Handler) me(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	response.OK(c, gin.H{
		"user_id":     actor.UserID,
		"username":    actor.Username,
		"role":        actor.RoleName,
		"permissions": actor.Permissions(),
	})
}
