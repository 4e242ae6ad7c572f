package article

import (
	"mime/multipart"

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
	grp := rg.Group("/articles", authMW)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.POST("/:id", h.update)
	grp.POST("/:id/:action", h.transition)
	grp.POST("/bulk", h.bulk)
}

// transition applies one action to one article through the same
// all-or-nothing path the bulk endpoint uses.
func (h *Handler) transition(c *gin.Context) {
	err := h.service.BulkTransition(
		middleware.CurrentActor(c), []string{c.Param("id")}, c.Param("action"), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"affected": 1})
}

func (h *Handler) list(c *gin.Context) {
	q := ListQueryFromContext(c)
	items, page, err := h.service.List(middleware.CurrentActor(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, items, page)
}

func (h *Handler) get(c *gin.Context) {
	art, err := h.service.Get(middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, art)
}

func (h *Handler) create(c *gin.Context) {
	req, image, ok := bindSubmission(c)
	if !ok {
		return
	}
	art, err := h.service.Create(middleware.CurrentActor(c), req, image, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, art)
}

func (h *Handler) update(c *gin.Context) {
	req, image, ok := bindSubmission(c)
	if !ok {
		return
	}
	art, err := h.service.Update(middleware.CurrentActor(c), c.Param("id"), req, image, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, art)
}

func (h *Handler) bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "ids and action are required")
		return
	}
	if err := h.service.BulkTransition(middleware.CurrentActor(c), req.IDs, req.Action, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"affected": len(req.IDs)})
}

// bindSubmission reads the submission from multipart form or JSON,
// together with the optional featured image. Writes the error response
// itself on failure.
func bindSubmission(c *gin.Context) (*SubmitRequest, *multipart.FileHeader, bool) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "malformed article submission")
		return nil, nil, false
	}
	image, err := c.FormFile("featured_image")
	if err != nil {
		image = nil // field absent, not an error
	}
	return &req, image, true
}
