package store

import "bookshelf/pkg/model"

// Permission names an action the permission matrix can grant.
type Permission string

const (
	CanView   Permission = "can_view"
	CanCreate Permission = "can_create"
	CanEdit   Permission = "can_edit"
	CanDelete Permission = "can_delete"
)

// AuthzStore answers whether a role holds a permission. The matrix lives
// in the database so deployments can tighten or loosen it without a new
// binary.
type AuthzStore interface {
	RoleHasPermission(role model.Role, permission Permission) (bool, error)
}
