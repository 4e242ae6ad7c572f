package user

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
	grp := rg.Group("/users", authMW, middleware.RequirePermission(models.PermManageUsers))
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.POST("/:id", h.update)
	grp.POST("/:id/:action", h.transition)
	grp.POST("/bulk", h.bulk)

	// removal needs its own permission on top of manage_users
	del := rg.Group("/users", authMW,
		middleware.RequirePermission(models.PermManageUsers),
		middleware.RequirePermission(models.PermDeleteUsers))
	del.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	rows, page, err := h.service.List(pagination.FromContext(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rows, page)
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username, email, password and role_id are required")
		return
	}
	u, err := h.service.Create(middleware.CurrentActor(c), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and role_id are required")
		return
	}
	u, err := h.service.Update(middleware.CurrentActor(c), c.Param("id"), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) transition(c *gin.Context) {
	err := h.service.Transition(
		middleware.CurrentActor(c), c.Param("id"), c.Param("action"), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": 1})
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

func (h *Handler) remove(c *gin.Context) {
	if err := h.service.Delete(middleware.CurrentActor(c), c.Param("id"), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
