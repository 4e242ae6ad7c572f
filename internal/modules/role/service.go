package role

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// SubmitRequest carries a role create or update submission.
type SubmitRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

type Service struct {
	db       *gorm.DB
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, activity: activity}
}

func (s *Service) List() ([]models.RoleModel, error) {
	var rows []models.RoleModel
	err := s.db.Preload("Permissions").Order("name").Find(&rows).Error
	return rows, err
}

func (s *Service) Get(id string) (*models.RoleModel, error) {
	var role models.RoleModel
	if err := s.db.Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &role, nil
}

// Permissions returns the role's permission ids plus full details for the
// permission editor.
func (s *Service) Permissions(id string) (map[string]interface{}, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		ids[i] = p.ID
	}
	return map[string]interface{}{
		"role_id":        role.ID,
		"permission_ids": ids,
		"permissions":    role.Permissions,
	}, nil
}

func (s *Service) Create(actor *middleware.Actor, req *SubmitRequest, ip string) (*models.RoleModel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	role := models.RoleModel{Name: name, Description: req.Description}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		if err := s.replacePermissions(tx, &role, req.PermissionIDs); err != nil {
			return err
		}
		return s.audit(tx, actor, role.ID, "role.create",
			fmt.Sprintf("created role %q", role.Name), ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &role, nil
}

// Update renames a role and replaces its permission set. Protected roles
// cannot be renamed but their permission set remains editable.
func (s *Service) Update(actor *middleware.Actor, id string, req *SubmitRequest, ip string) (*models.RoleModel, error) {
	var role models.RoleModel
	if err := s.db.First(&role, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if models.IsProtectedRole(role.Name) && name != role.Name {
		return nil, apperr.Forbidden("built-in roles cannot be renamed")
	}

	role.Name = name
	role.Description = req.Description

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		if err := s.replacePermissions(tx, &role, req.PermissionIDs); err != nil {
			return err
		}
		return s.audit(tx, actor, role.ID, "role.update",
			fmt.Sprintf("updated role %q", role.Name), ip)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}
	return &role, nil
}

func (s *Service) Delete(actor *middleware.Actor, id, ip string) error {
	var role models.RoleModel
	if err := s.db.First(&role, "id = ?", id).Error; err != nil {
		return asNotFound(err)
	}
	if models.IsProtectedRole(role.Name) {
		return apperr.Forbidden("built-in roles cannot be deleted")
	}

	var inUse int64
	if err := s.db.Model(&models.UserModel{}).Where("role_id = ?", role.ID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflict("role is still assigned to users")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE role_model_id = ?", role.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&role).Error; err != nil {
			return err
		}
		return s.audit(tx, actor, role.ID, "role.delete",
			fmt.Sprintf("deleted role %q", role.Name), ip)
	})
}

// replacePermissions swaps the whole permission set inside the caller's
// transaction. Unknown ids are skipped.
func (s *Service) replacePermissions(tx *gorm.DB, role *models.RoleModel, ids []string) error {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			kept = append(kept, strings.TrimSpace(id))
		}
	}

	var perms []models.PermissionModel
	if len(kept) > 0 {
		if err := tx.Where("id IN ?", kept).Find(&perms).Error; err != nil {
			return err
		}
	}
	return tx.Model(role).Association("Permissions").Replace(perms)
}

func (s *Service) audit(tx *gorm.DB, actor *middleware.Actor, entityID, action, desc, ip string) error {
	return s.activity.Record(tx, activity.Entry{
		UserID:      actor.UserID,
		Action:      action,
		EntityType:  "role",
		EntityID:    entityID,
		Description: desc,
		IPAddress:   ip,
	})
}

func classifyWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("role name is already taken")
	}
	return err
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("role not found")
	}
	return err
}
