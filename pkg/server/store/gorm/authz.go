package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure AuthzStore implements store.AuthzStore
var _ store.AuthzStore = (*AuthzStore)(nil)

// AuthzStore implements store.AuthzStore using GORM. The role to
// permission matrix is seeded by migration and read here.
type AuthzStore struct {
	db *gorm.DB
}

// NewAuthzStore creates a new AuthzStore
func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// RoleHasPermission reports whether the role holds the permission.
func (s *AuthzStore) RoleHasPermission(role model.Role, permission store.Permission) (bool, error) {
	var granted bool
	err := s.db.Raw(`
		SELECT EXISTS(
			SELECT 1 FROM role_permissions
			WHERE role = ? AND permission = ?
		)
	`, role.String(), string(permission)).Scan(&granted).Error
	if err != nil {
		return false, translateError(err)
	}
	return granted, nil
}
