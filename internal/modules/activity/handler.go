package activity

import (
	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/activity", authMW, middleware.RequirePermission(models.PermViewActivityLog))
	grp.GET("", h.list)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := Filter{
		UserID:     c.Query("user_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}

	rows, page, err := h.service.List(q, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rows, page)
}
