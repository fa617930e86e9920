package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure AuthorsStore implements store.AuthorsStore
var _ store.AuthorsStore = (*AuthorsStore)(nil)

// AuthorsStore implements store.AuthorsStore using GORM
type AuthorsStore struct {
	db *gorm.DB
}

// NewAuthorsStore creates a new AuthorsStore
func NewAuthorsStore(db *gorm.DB) *AuthorsStore {
	return &AuthorsStore{db: db}
}

// ListAuthors returns authors with their books preloaded, optionally
// narrowed by a case-insensitive name search.
func (s *AuthorsStore) ListAuthors(search string) ([]model.Author, error) {
	query := s.db.Preload("Books").Order("authors.name ASC")
	if search != "" {
		query = query.Where("authors.name ILIKE ?", "%"+search+"%")
	}

	var authors []model.Author
	if err := query.Find(&authors).Error; err != nil {
		return nil, translateError(err)
	}
	return authors, nil
}

// ShowAuthor retrieves a single author by ID, books preloaded.
func (s *AuthorsStore) ShowAuthor(id int64) (model.Author, error) {
	var author model.Author
	err := s.db.Preload("Books").First(&author, id).Error
	if err != nil {
		return model.Author{}, translateError(err)
	}
	return author, nil
}

// CreateAuthor persists a new author.
func (s *AuthorsStore) CreateAuthor(author *model.Author) error {
	return translateError(s.db.Create(author).Error)
}

// UpdateAuthor writes the author's name.
func (s *AuthorsStore) UpdateAuthor(author *model.Author) error {
	tx := s.db.Model(&model.Author{}).Where("id = ?", author.ID).
		Update("name", author.Name)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAuthor removes the author. The books foreign key cascades.
func (s *AuthorsStore) DeleteAuthor(id int64) error {
	tx := s.db.Delete(&model.Author{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
