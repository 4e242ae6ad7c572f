package setting

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
	grp := rg.Group("/settings", authMW, middleware.RequirePermission(models.PermManageSettings))
	grp.GET("", h.all)
	grp.GET("/:key", h.get)
	grp.POST("", h.setMany)
	grp.POST("/:key/file", h.setFile)
}

func (h *Handler) all(c *gin.Context) {
	values, err := h.service.All()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, values)
}

func (h *Handler) get(c *gin.Context) {
	value, err := h.service.Get(c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"key": c.Param("key"), "value": value})
}

func (h *Handler) setMany(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.BadRequest(c, "expected a key-value object")
		return
	}
	if err := h.service.SetMany(middleware.CurrentActor(c), values, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": len(values)})
}

func (h *Handler) setFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}
	stored, err := h.service.SetFile(
		middleware.CurrentActor(c), c.Param("key"), header, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"key": c.Param("key"), "value": stored})
}
