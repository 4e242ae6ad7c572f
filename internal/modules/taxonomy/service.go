package taxonomy

import (
	"errors"
	"strings"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/modules/slug"
	"github.com/quillpress/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service manages the categories and tags articles are labelled with.
type Service struct {
	db       *gorm.DB
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, activity: activity}
}

func (s *Service) Categories() ([]models.CategoryModel, error) {
	var rows []models.CategoryModel
	err := s.db.Order("name").Find(&rows).Error
	return rows, err
}

func (s *Service) Tags() ([]models.TagModel, error) {
	var rows []models.TagModel
	err := s.db.Order("name").Find(&rows).Error
	return rows, err
}

func (s *Service) CreateCategory(actor *middleware.Actor, name, ip string) (*models.CategoryModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	catSlug := slug.Normalize(name)
	if catSlug == "" {
		catSlug = slug.RandomToken(12)
	}

	cat := models.CategoryModel{Name: name, Slug: catSlug}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "category.create",
			EntityType:  "category",
			EntityID:    cat.ID,
			Description: "created category " + name,
			IPAddress:   ip,
		})
	})
	if err != nil {
		return nil, classifyWriteError(err, "category already exists")
	}
	return &cat, nil
}

func (s *Service) CreateTag(actor *middleware.Actor, name, ip string) (*models.TagModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	tag := models.TagModel{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "tag.create",
			EntityType:  "tag",
			EntityID:    tag.ID,
			Description: "created tag " + name,
			IPAddress:   ip,
		})
	})
	if err != nil {
		return nil, classifyWriteError(err, "tag already exists")
	}
	return &tag, nil
}

// DeleteCategory removes a category and its article association rows.
func (s *Service) DeleteCategory(actor *middleware.Actor, id, ip string) error {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		return asNotFound(err, "category not found")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_categories WHERE category_model_id = ?", cat.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&cat).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "category.delete",
			EntityType:  "category",
			EntityID:    cat.ID,
			Description: "deleted category " + cat.Name,
			IPAddress:   ip,
		})
	})
}

// DeleteTag removes a tag and its article association rows.
func (s *Service) DeleteTag(actor *middleware.Actor, id, ip string) error {
	var tag models.TagModel
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		return asNotFound(err, "tag not found")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_model_id = ?", tag.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "tag.delete",
			EntityType:  "tag",
			EntityID:    tag.ID,
			Description: "deleted tag " + tag.Name,
			IPAddress:   ip,
		})
	})
}

func classifyWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msg)
	}
	return err
}

func asNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
