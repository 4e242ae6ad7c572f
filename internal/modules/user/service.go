package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/quillpress/core/internal/pkg/pagination"
	"github.com/quillpress/core/internal/pkg/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account state transitions.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
	ActionSuspend    = "suspend"
	ActionUnsuspend  = "unsuspend"
	ActionDelete     = "delete"
)

// TargetStatus maps an account action onto the status it produces.
func TargetStatus(action string) (models.UserStatus, bool) {
	switch action {
	case ActionActivate, ActionUnsuspend:
		return models.UserActive, true
	case ActionDeactivate:
		return models.UserInactive, true
	case ActionSuspend:
		return models.UserSuspended, true
	}
	return "", false
}

// CreateRequest carries a new account submission.
type CreateRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	RoleID    string `json:"role_id" binding:"required"`
}

// UpdateRequest carries a profile update. Username is absent: it is
// immutable once created.
type UpdateRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password"` // blank keeps the current one
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	RoleID    string `json:"role_id" binding:"required"`
}

type Service struct {
	db       *gorm.DB
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, activity: activity}
}

func (s *Service) List(q pagination.Query, search string) ([]models.UserModel, response.Pagination, error) {
	query := s.db.Model(&models.UserModel{}).Preload("Role").
		Order("created_at DESC").Order("id ASC")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("(username LIKE ? OR email LIKE ?)", like, like)
	}

	var rows []models.UserModel
	page, err := pagination.Paginate(query, q, &rows)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return rows, page, nil
}

func (s *Service) Get(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Preload("Role.Permissions").First(&u, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &u, nil
}

func (s *Service) Create(actor *middleware.Actor, req *CreateRequest, ip string) (*models.UserModel, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, apperr.Validation("username is required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if err := s.roleExists(req.RoleID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		RoleID:    req.RoleID,
		Status:    models.UserActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, u.ID, "user.create",
			fmt.Sprintf("created account %q", u.Username), ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &u, nil
}

func (s *Service) Update(actor *middleware.Actor, id string, req *UpdateRequest, ip string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.roleExists(req.RoleID); err != nil {
		return nil, err
	}

	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Bio = req.Bio
	u.RoleID = req.RoleID
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, apperr.Validation("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, u.ID, "user.update",
			fmt.Sprintf("updated account %q", u.Username), ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &u, nil
}

// Transition changes an account's status. Acting on one's own account is
// rejected no matter the permissions held.
func (s *Service) Transition(actor *middleware.Actor, id, action, ip string) error {
	target, ok := TargetStatus(action)
	if !ok {
		return apperr.Validation("unknown action " + action)
	}
	if actor.UserID == id {
		return apperr.Forbidden("you may not change your own account state")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var u models.UserModel
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		if u.Status == target {
			return nil
		}
		if err := tx.Model(&u).Update("status", target).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, u.ID, "user."+action,
			fmt.Sprintf("%s account %q", action, u.Username), ip)
	})
}

// BulkTransition applies one account action to every id, all or nothing.
// The actor's own id anywhere in the batch aborts it before any change;
// already transitioned accounts are skipped without an audit entry.
func (s *Service) BulkTransition(actor *middleware.Actor, ids []string, action, ip string) error {
	if len(ids) == 0 {
		return apperr.Validation("no users selected")
	}
	target, isStatusAction := TargetStatus(action)
	if !isStatusAction && action != ActionDelete {
		return apperr.Validation("unknown action " + action)
	}
	if action == ActionDelete && !actor.Can(models.PermDeleteUsers) {
		return apperr.Forbidden("you may not delete accounts")
	}
	for _, id := range ids {
		if id == actor.UserID {
			return apperr.Forbidden("you may not act on your own account")
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var u models.UserModel
			if err := tx.First(&u, "id = ?", id).Error; err != nil {
				return asNotFound(err)
			}
			if action == ActionDelete {
				if err := tx.Delete(&u).Error; err != nil {
					return err
				}
				if err := s.audit(tx, actor, u.ID, "user.delete",
					fmt.Sprintf("deleted account %q", u.Username), ip); err != nil {
					return err
				}
				continue
			}
			if u.Status == target {
				continue
			}
			if err := tx.Model(&u).Update("status", target).Error; err != nil {
				return err
			}
			if err := s.audit(tx, actor, u.ID, "user."+action,
				fmt.Sprintf("%s account %q", action, u.Username), ip); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an account. Self-deletion is rejected unconditionally.
func (s *Service) Delete(actor *middleware.Actor, id, ip string) error {
	if actor.UserID == id {
		return apperr.Forbidden("you may not delete your own account")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var u models.UserModel
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		if err := tx.Delete(&u).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, u.ID, "user.delete",
			fmt.Sprintf("deleted account %q", u.Username), ip)
	})
}

func (s *Service) roleExists(id string) error {
	var n int64
	if err := s.db.Model(&models.RoleModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.Validation("unknown role")
	}
	return nil
}

func (s *Service) audit(tx *gorm.DB, actor *middleware.Actor, entityID, action, desc, ip string) error {
	return s.activity.Record(tx, activity.Entry{
		UserID:      actor.UserID,
		Action:      action,
		EntityType:  "user",
		EntityID:    entityID,
		Description: desc,
		IPAddress:   ip,
	})
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return apperr.Validation("invalid email address")
	}
	return nil
}

func classifyWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("username or email is already taken")
	}
	return err
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}
