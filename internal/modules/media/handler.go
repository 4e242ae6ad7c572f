package media

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
	grp := rg.Group("/media", authMW, middleware.RequirePermission(models.PermUploadFiles))
	grp.POST("/upload", h.upload)
}

// upload accepts a multipart "file" field and an optional "name" hint.
func (h *Handler) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}

	stored, err := h.service.Store(header, DirArticles, c.PostForm("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"path": stored})
}
