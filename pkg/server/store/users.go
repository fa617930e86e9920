package store

import "bookshelf/pkg/model"

// UsersStore provides access to user accounts and their profiles.
type UsersStore interface {
	// CreateUser persists the user and a profile carrying the given role
	// atomically. ErrDuplicate when the username is taken.
	CreateUser(user *model.User, role model.Role) error
	ShowUser(id int64) (model.User, error)
	// FindUser looks a user up by username, profile preloaded.
	FindUser(username string) (model.User, error)
	ListUsers() ([]model.User, error)
	// SetRole updates the role on the user's profile, creating the
	// profile if it is somehow missing.
	SetRole(userID int64, role model.Role) error
}
