package comment

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
	grp := rg.Group("/comments", authMW, middleware.RequirePermission(models.PermModerateComments))
	grp.GET("", h.list)
	grp.POST("/:id/:action", h.transition)
	grp.POST("/bulk", h.bulk)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := Filter{
		Status:    c.Query("status"),
		ArticleID: c.Query("article"),
	}
	rows, page, err := h.service.List(q, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rows, page)
}

func (h *Handler) transition(c *gin.Context) {
	changed, err := h.service.Transition(
		middleware.CurrentActor(c), c.Param("id"), c.Param("action"), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"changed": changed})
}

type bulkRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Action string   `json:"action" binding:"required"`
}

func (h *Handler) bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "ids and action are required")
		return
	}
	if err := h.service.BulkTransition(
		middleware.CurrentActor(c), req.IDs, req.Action, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"affected": len(req.IDs)})
}
