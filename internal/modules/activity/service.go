package activity

import (
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Entry is one audit fact to append.
type Entry struct {
	UserID      string
	Action      string
	EntityType  string
	EntityID    string
	Description string
	IPAddress   string
}

// Filter narrows the audit listing.
type Filter struct {
	UserID     string
	Action     string
	EntityType string
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record appends an audit entry on the given handle. Callers inside a
// transaction pass their tx so the entry rolls back with the mutation it
// describes.
func (s *Service) Record(tx *gorm.DB, e Entry) error {
	if tx == nil {
		tx = s.db
	}
	row := models.ActivityLogModel{
		UserID:      e.UserID,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Description: e.Description,
		IPAddress:   e.IPAddress,
	}
	return tx.Create(&row).Error
}

// List returns audit entries newest first.
func (s *Service) List(q pagination.Query, f Filter) ([]models.ActivityLogModel, response.Pagination, error) {
	query := s.db.Model(&models.ActivityLogModel{})
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.EntityType != "" {
		query = query.Where("entity_type = ?", f.EntityType)
	}
	query = query.Order("id DESC")

	var rows []models.ActivityLogModel
	page, err := pagination.Paginate(query, q, &rows)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return rows, page, nil
}
