package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a role of the audited application. The permission scanner reads
// the role_permissions join to inventory what each role is granted.
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Permission is a single grantable permission code, e.g. "payroll.approve".
type Permission struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name  string    `gorm:"type:varchar(255);not null" json:"name"`
	Group string    `gorm:"type:varchar(50);not null;index" json:"group"` // "payroll", "users", "settings"...
}

// RolePermissionPair is the flat read-model of the role_permissions join
// consumed by the permission scanner.
type RolePermissionPair struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
}
