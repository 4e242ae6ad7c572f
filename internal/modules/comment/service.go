package comment

import (
	"errors"
	"fmt"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Moderation actions.
const (
	ActionApprove   = "approve"
	ActionUnapprove = "unapprove"
	ActionSpam      = "spam"
	ActionUnspam    = "unspam"
	ActionTrash     = "trash"
	ActionRestore   = "restore"
	ActionDelete    = "delete"
)

// TargetStatus maps a moderation action to the status it moves a comment
// into. Delete has no target; it removes the row.
func TargetStatus(action string) (models.CommentStatus, bool) {
	switch action {
	case ActionApprove:
		return models.CommentApproved, true
	case ActionUnapprove, ActionUnspam, ActionRestore:
		return models.CommentPending, true
	case ActionSpam:
		return models.CommentSpam, true
	case ActionTrash:
		return models.CommentTrash, true
	}
	return "", false
}

// IsKnownAction includes delete.
func IsKnownAction(action string) bool {
	if action == ActionDelete {
		return true
	}
	_, ok := TargetStatus(action)
	return ok
}

// Filter narrows the moderation listing.
type Filter struct {
	Status    string
	ArticleID string
}

type Service struct {
	db       *gorm.DB
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, activity: activity}
}

// List returns comments newest first, with their article for context.
func (s *Service) List(q pagination.Query, f Filter) ([]models.CommentModel, response.Pagination, error) {
	query := s.db.Model(&models.CommentModel{}).Preload("Article")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ArticleID != "" {
		query = query.Where("article_id = ?", f.ArticleID)
	}
	query = query.Order("created_at DESC").Order("id ASC")

	var rows []models.CommentModel
	page, err := pagination.Paginate(query, q, &rows)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return rows, page, nil
}

// Transition applies one moderation action to one comment. An action whose
// target state the comment already holds is a no-op: changed=false, status
// untouched, no audit entry.
func (s *Service) Transition(actor *middleware.Actor, id, action, ip string) (changed bool, err error) {
	if !IsKnownAction(action) {
		return false, apperr.Validation("unknown action " + action)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cmt models.CommentModel
		if err := tx.First(&cmt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("comment not found")
			}
			return err
		}
		changed, err = s.apply(tx, actor, &cmt, action, ip)
		return err
	})
	return changed, err
}

// BulkTransition applies one action to every id, all or nothing. Already
// transitioned comments are skipped without an audit entry; a missing or
// non-deletable comment aborts the batch.
func (s *Service) BulkTransition(actor *middleware.Actor, ids []string, action, ip string) error {
	if len(ids) == 0 {
		return apperr.Validation("no comments selected")
	}
	if !IsKnownAction(action) {
		return apperr.Validation("unknown action " + action)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var cmt models.CommentModel
			if err := tx.First(&cmt, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("comment " + id + " not found")
				}
				return err
			}
			if _, err := s.apply(tx, actor, &cmt, action, ip); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) apply(tx *gorm.DB, actor *middleware.Actor, cmt *models.CommentModel, action, ip string) (bool, error) {
	if action == ActionDelete {
		if !cmt.IsSoftDeleted() {
			return false, apperr.Validation("comments can only be deleted from spam or trash")
		}
		if err := tx.Delete(cmt).Error; err != nil {
			return false, err
		}
		return true, s.audit(tx, actor, cmt, action, ip)
	}

	target, _ := TargetStatus(action)
	if cmt.Status == target {
		return false, nil
	}
	if err := tx.Model(cmt).Update("status", target).Error; err != nil {
		return false, err
	}
	return true, s.audit(tx, actor, cmt, action, ip)
}

func (s *Service) audit(tx *gorm.DB, actor *middleware.Actor, cmt *models.CommentModel, action, ip string) error {
	return s.activity.Record(tx, activity.Entry{
		UserID:      actor.UserID,
		Action:      "comment." + action,
		EntityType:  "comment",
		EntityID:    cmt.ID,
		Description: fmt.Sprintf("%s comment on article %s", action, cmt.ArticleID),
		IPAddress:   ip,
	})
}
