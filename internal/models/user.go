package models

import "time"

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// UserModel is a CMS account. Username is immutable once created.
type UserModel struct {
	Base
	Username       string     `json:"username"   gorm:"uniqueIndex;not null"`
	Email          string     `json:"email"      gorm:"uniqueIndex;not null"`
	Password       string     `json:"-"          gorm:"not null"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Bio            string     `json:"bio"        gorm:"type:text"`
	ProfilePicture *string    `json:"profile_picture"`
	RoleID         string     `json:"role_id"    gorm:"type:char(36);index;not null"`
	Role           *RoleModel `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Status         UserStatus `json:"status"     gorm:"type:varchar(20);default:'active';index"`
	LastLogin      *time.Time `json:"last_login"`
}

func (UserModel) TableName() string { return "users" }

// Protected built-in role names. Protection is a hardcoded convention,
// not a schema-level flag.
const (
	RoleAdministrator = "administrator"
	RoleSubscriber    = "subscriber"
)

// IsProtectedRole reports whether a role may never be renamed or deleted.
func IsProtectedRole(name string) bool {
	return name == RoleAdministrator || name == RoleSubscriber
}

// RoleModel groups permissions. The built-in administrator and subscriber
// roles are protected by convention and cannot be renamed or deleted.
type RoleModel struct {
	Base
	Name        string            `json:"name" gorm:"uniqueIndex;not null"`
	Description string            `json:"description"`
	Permissions []PermissionModel `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

func (RoleModel) TableName() string { return "roles" }

// PermissionModel is one entry in the static permission catalog.
type PermissionModel struct {
	Base
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
}

func (PermissionModel) TableName() string { return "permissions" }
