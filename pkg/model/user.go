package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account that can authenticate against the API
type User struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;unique"`
	Email        string     `gorm:"column:email"`
	PasswordHash []byte     `gorm:"column:password_hash"`
	DateOfBirth  *time.Time `gorm:"column:date_of_birth"`
	IsStaff      bool       `gorm:"column:is_staff"`
	IsActive     bool       `gorm:"column:is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`

	Profile *UserProfile `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plaintext password with bcrypt and stores the
// hash on the user. The plaintext is never persisted.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// Role returns the role from the user's profile, defaulting to Member
// when no profile row is loaded.
func (u *User) Role() Role {
	if u.Profile == nil {
		return RoleMember
	}
	return u.Profile.Role
}

// UserProfile extends a user with role-based access. A profile is
// created automatically when the user is created.
type UserProfile struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID int64 `gorm:"column:user_id;unique"`
	Role   Role  `gorm:"column:role"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
