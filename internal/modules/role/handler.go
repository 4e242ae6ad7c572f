package role

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
	grp := rg.Group("/roles", authMW, middleware.RequirePermission(models.PermManageRoles))
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.GET("/:id/permissions", h.permissions)
	grp.POST("", h.create)
	grp.POST("/:id", h.update)
	grp.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	rows, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) get(c *gin.Context) {
	role, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, role)
}

func (h *Handler) permissions(c *gin.Context) {
	data, err := h.service.Permissions(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, data)
}

func (h *Handler) create(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	role, err := h.service.Create(middleware.CurrentActor(c), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, role)
}

func (h *Handler) update(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	role, err := h.service.Update(middleware.CurrentActor(c), c.Param("id"), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, role)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.service.Delete(middleware.CurrentActor(c), c.Param("id"), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
