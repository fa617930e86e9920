package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser persists the user and its profile in one transaction, so no
// account ever exists without a role.
func (s *UsersStore) CreateUser(user *model.User, role model.Role) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := model.UserProfile{UserID: user.ID, Role: role}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	return translateError(err)
}

// ShowUser retrieves a user by ID, profile preloaded.
func (s *UsersStore) ShowUser(id int64) (model.User, error) {
	var user model.User
	err := s.db.Preload("Profile").First(&user, id).Error
	if err != nil {
		return model.User{}, translateError(err)
	}
	return user, nil
}

// FindUser looks a user up by username, profile preloaded.
func (s *UsersStore) FindUser(username string) (model.User, error) {
	var user model.User
	err := s.db.Preload("Profile").
		Where("username = ?", username).First(&user).Error
	if err != nil {
		return model.User{}, translateError(err)
	}
	return user, nil
}

// ListUsers returns all users, profiles preloaded.
func (s *UsersStore) ListUsers() ([]model.User, error) {
	var users []model.User
	err := s.db.Preload("Profile").Order("users.username ASC").Find(&users).Error
	if err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// SetRole updates the role on the user's profile, creating the profile
// when it is missing.
func (s *UsersStore) SetRole(userID int64, role model.Role) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			return err
		}
		update := tx.Model(&model.UserProfile{}).
			Where("user_id = ?", userID).Update("role", role)
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			profile := model.UserProfile{UserID: userID, Role: role}
			return tx.Create(&profile).Error
		}
		return nil
	})
	return translateError(err)
}
