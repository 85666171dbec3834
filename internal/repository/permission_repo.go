package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// PermissionRepository reads the flat role/permission grants of the audited
// application.
type PermissionRepository interface {
	ListRolePermissions(ctx context.Context) ([]model.RolePermissionPair, error)
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository returns a new instance of PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

// ListRolePermissions flattens the role → role_permissions → permissions join
// into (role, permission) pairs, ordered by role creation then code so the
// inventory is stable across runs.
func (r *permissionRepository) ListRolePermissions(ctx context.Context) ([]model.RolePermissionPair, error) {
	var pairs []model.RolePermissionPair
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.name AS role, p.code AS permission
		FROM roles r
		INNER JOIN role_permissions rp ON rp.role_id = r.id
		INNER JOIN permissions p ON p.id = rp.permission_id
		ORDER BY r.created_at asc, p.code asc
	`).Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}
