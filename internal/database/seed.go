package database

import (
	"github.com/quillpress/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Permission catalog. Names follow the edit-own / edit-others split the
// transition handlers check against.
var permissionCatalog = []models.PermissionModel{
	{Name: models.PermPublishArticles, Description: "Publish articles and set published_at"},
	{Name: models.PermEditArticles, Description: "Edit own articles"},
	{Name: models.PermEditOthersArticles, Description: "Edit articles of any author"},
	{Name: models.PermViewOthersArticles, Description: "See unpublished articles of any author in listings"},
	{Name: models.PermDeleteArticles, Description: "Delete own articles"},
	{Name: models.PermDeleteOthersArticles, Description: "Delete articles of any author"},
	{Name: models.PermManagePages, Description: "Create, edit and delete pages"},
	{Name: models.PermManageCategories, Description: "Manage categories and tags"},
	{Name: models.PermModerateComments, Description: "Approve, spam, trash and delete comments"},
	{Name: models.PermManageUsers, Description: "Create and edit user accounts"},
	{Name: models.PermDeleteUsers, Description: "Delete user accounts"},
	{Name: models.PermManageRoles, Description: "Edit roles and their permission sets"},
	{Name: models.PermManageSettings, Description: "Edit site settings"},
	{Name: models.PermUploadFiles, Description: "Upload media files"},
	{Name: models.PermViewActivityLog, Description: "Read the audit trail"},
}

var builtinRoles = map[string][]string{
	models.RoleAdministrator: nil, // nil means every permission
	"editor": {
		models.PermPublishArticles, models.PermEditArticles, models.PermEditOthersArticles,
		models.PermViewOthersArticles, models.PermDeleteArticles, models.PermDeleteOthersArticles,
		models.PermManagePages, models.PermManageCategories, models.PermModerateComments,
		models.PermUploadFiles,
	},
	"author": {
		models.PermEditArticles, models.PermDeleteArticles, models.PermUploadFiles,
	},
	models.RoleSubscriber: {},
}

// Seed inserts the permission catalog, the built-in roles, and a default
// administrator account when the users table is empty. Returns whether the
// default admin was created so the caller can warn about the credentials.
func Seed(db *gorm.DB) (adminCreated bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, p := range permissionCatalog {
			perm := p
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"description"}),
			}).Create(&perm).Error; err != nil {
				return err
			}
		}

		var allPerms []models.PermissionModel
		if err := tx.Find(&allPerms).Error; err != nil {
			return err
		}
		byName := make(map[string]models.PermissionModel, len(allPerms))
		for _, p := range allPerms {
			byName[p.Name] = p
		}

		for name, permNames := range builtinRoles {
			var role models.RoleModel
			if err := tx.Where(models.RoleModel{Name: name}).
				FirstOrCreate(&role).Error; err != nil {
				return err
			}

			var count int64
			if err := tx.Table("role_permissions").
				Where("role_model_id = ?", role.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue // never clobber an existing permission set
			}

			perms := make([]models.PermissionModel, 0, len(permNames))
			if permNames == nil {
				perms = allPerms
			} else {
				for _, pn := range permNames {
					if p, ok := byName[pn]; ok {
						perms = append(perms, p)
					}
				}
			}
			if len(perms) == 0 {
				continue
			}
			if err := tx.Model(&role).Association("Permissions").Append(perms); err != nil {
				return err
			}
		}

		var userCount int64
		if err := tx.Model(&models.UserModel{}).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			var adminRole models.RoleModel
			if err := tx.Where("name = ?", models.RoleAdministrator).
				First(&adminRole).Error; err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := models.UserModel{
				Username: "admin",
				Email:    "admin@localhost",
				Password: string(hash),
				RoleID:   adminRole.ID,
				Status:   models.UserActive,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			adminCreated = true
		}
		return nil
	})
	return adminCreated, err
}
