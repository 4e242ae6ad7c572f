package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/modules/slug"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/quillpress/core/internal/pkg/htmltext"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

// SubmitRequest carries a page create or update submission.
type SubmitRequest struct {
	Title   string `form:"title"   json:"title"`
	Slug    string `form:"slug"    json:"slug"`
	Content string `form:"content" json:"content"`
	Status  string `form:"status"  json:"status"`
}

type Service struct {
	db       *gorm.DB
	slugs    *slug.Resolver
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, slugs: slug.ForPages(db), activity: activity}
}

// Validate checks a page submission without touching storage.
func Validate(req *SubmitRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Validation("title is required")
	}
	if htmltext.IsEmpty(req.Content) {
		return apperr.Validation("content is required")
	}
	switch models.PageStatus(req.Status) {
	case "", models.PageDraft, models.PagePublished:
	default:
		return apperr.Validation("unknown status " + req.Status)
	}
	return nil
}

func (s *Service) List(q pagination.Query) ([]models.PageModel, response.Pagination, error) {
	query := s.db.Model(&models.PageModel{}).Preload("Author").
		Order("created_at DESC").Order("id ASC")

	var rows []models.PageModel
	page, err := pagination.Paginate(query, q, &rows)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return rows, page, nil
}

func (s *Service) Get(id string) (*models.PageModel, error) {
	var pg models.PageModel
	if err := s.db.Preload("Author").First(&pg, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &pg, nil
}

func (s *Service) Create(actor *middleware.Actor, req *SubmitRequest, ip string) (*models.PageModel, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	resolved, err := s.slugs.Resolve(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	pg := models.PageModel{
		Title:    strings.TrimSpace(req.Title),
		Slug:     resolved,
		Content:  req.Content,
		Status:   statusOrDefault(req.Status),
		AuthorID: actor.UserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pg).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, &pg, "page.create", "created page", ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &pg, nil
}

func (s *Service) Update(actor *middleware.Actor, id string, req *SubmitRequest, ip string) (*models.PageModel, error) {
	var pg models.PageModel
	if err := s.db.First(&pg, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	if err := Validate(req); err != nil {
		return nil, err
	}
	resolved, err := s.slugs.ResolveForUpdate(pg.Slug, req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	pg.Title = strings.TrimSpace(req.Title)
	pg.Slug = resolved
	pg.Content = req.Content
	pg.Status = statusOrDefault(req.Status)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pg).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, &pg, "page.update", "updated page", ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &pg, nil
}

func (s *Service) Delete(actor *middleware.Actor, id, ip string) error {
	var pg models.PageModel
	if err := s.db.First(&pg, "id = ?", id).Error; err != nil {
		return asNotFound(err)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&pg).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, &pg, "page.delete", "deleted page", ip)
	})
}

func (s *Service) audit(tx *gorm.DB, actor *middleware.Actor, pg *models.PageModel, action, verb, ip string) error {
	return s.activity.Record(tx, activity.Entry{
		UserID:      actor.UserID,
		Action:      action,
		EntityType:  "page",
		EntityID:    pg.ID,
		Description: fmt.Sprintf("%s %q", verb, pg.Title),
		IPAddress:   ip,
	})
}

func statusOrDefault(raw string) models.PageStatus {
	if raw == "" {
		return models.PageDraft
	}
	return models.PageStatus(raw)
}

func classifyWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("slug is already in use")
	}
	return err
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("page not found")
	}
	return err
}
