package page

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
	grp := rg.Group("/pages", authMW, middleware.RequirePermission(models.PermManagePages))
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.POST("/:id", h.update)
	grp.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	rows, page, err := h.service.List(pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rows, page)
}

func (h *Handler) get(c *gin.Context) {
	pg, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pg)
}

func (h *Handler) create(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "malformed page submission")
		return
	}
	pg, err := h.service.Create(middleware.CurrentActor(c), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pg)
}

func (h *Handler) update(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "malformed page submission")
		return
	}
	pg, err := h.service.Update(middleware.CurrentActor(c), c.Param("id"), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pg)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.service.Delete(middleware.CurrentActor(c), c.Param("id"), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
