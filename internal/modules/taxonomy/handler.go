package taxonomy

import (
	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// listings are open to any authenticated actor; mutations are gated
	read := rg.Group("", authMW)
	read.GET("/categories", h.categories)
	read.GET("/tags", h.tags)

	write := rg.Group("", authMW, middleware.RequirePermission(models.PermManageCategories))
	write.POST("/categories", h.createCategory)
	write.DELETE("/categories/:id", h.deleteCategory)
	write.POST("/tags", h.createTag)
	write.DELETE("/tags/:id", h.deleteTag)
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) categories(c *gin.Context) {
	rows, err := h.service.Categories()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) tags(c *gin.Context) {
	rows, err := h.service.Tags()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	cat, err := h.service.CreateCategory(middleware.CurrentActor(c), req.Name, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) createTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	tag, err := h.service.CreateTag(middleware.CurrentActor(c), req.Name, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(middleware.CurrentActor(c), c.Param("id"), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) deleteTag(c *gin.Context) {
	if err := h.service.DeleteTag(middleware.CurrentActor(c), c.Param("id"), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
