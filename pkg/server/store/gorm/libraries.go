package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure LibrariesStore implements store.LibrariesStore
var _ store.LibrariesStore = (*LibrariesStore)(nil)

// LibrariesStore implements store.LibrariesStore using GORM
type LibrariesStore struct {
	db *gorm.DB
}

// NewLibrariesStore creates a new LibrariesStore
func NewLibrariesStore(db *gorm.DB) *LibrariesStore {
	return &LibrariesStore{db: db}
}

// ListLibraries returns all libraries with books and librarian preloaded.
func (s *LibrariesStore) ListLibraries() ([]model.Library, error) {
	var libraries []model.Library
	err := s.db.Preload("Books.Author").Preload("Librarian").
		Order("libraries.name ASC").Find(&libraries).Error
	if err != nil {
		return nil, translateError(err)
	}
	return libraries, nil
}

// ShowLibrary retrieves one library with books and librarian preloaded.
func (s *LibrariesStore) ShowLibrary(id int64) (model.Library, error) {
	var library model.Library
	err := s.db.Preload("Books.Author").Preload("Librarian").
		First(&library, id).Error
	if err != nil {
		return model.Library{}, translateError(err)
	}
	return library, nil
}

// CreateLibrary persists a new library.
func (s *LibrariesStore) CreateLibrary(library *model.Library) error {
	return translateError(s.db.Create(library).Error)
}

// UpdateLibrary writes the library's name.
func (s *LibrariesStore) UpdateLibrary(library *model.Library) error {
	tx := s.db.Model(&model.Library{}).Where("id = ?", library.ID).
		Update("name", library.Name)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteLibrary removes the library. Join rows and the librarian cascade;
// the books themselves survive.
func (s *LibrariesStore) DeleteLibrary(id int64) error {
	tx := s.db.Delete(&model.Library{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddBook associates a book with the library. Already-present is a no-op.
func (s *LibrariesStore) AddBook(libraryID, bookID int64) error {
	if err := s.requireLibraryAndBook(libraryID, bookID); err != nil {
		return err
	}
	err := s.db.Exec(`
		INSERT INTO library_books (library_id, book_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, libraryID, bookID).Error
	return translateError(err)
}

// RemoveBook breaks the association only, never deleting the book.
func (s *LibrariesStore) RemoveBook(libraryID, bookID int64) error {
	if err := s.requireLibraryAndBook(libraryID, bookID); err != nil {
		return err
	}
	tx := s.db.Exec(`
		DELETE FROM library_books WHERE library_id = ? AND book_id = ?
	`, libraryID, bookID)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotLinked
	}
	return nil
}

// SetLibrarian assigns the named librarian, replacing any previous one.
func (s *LibrariesStore) SetLibrarian(libraryID int64, name string) (model.Librarian, error) {
	var librarian model.Librarian
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var library model.Library
		if err := tx.First(&library, libraryID).Error; err != nil {
			return err
		}
		if err := tx.Where("library_id = ?", libraryID).
			Delete(&model.Librarian{}).Error; err != nil {
			return err
		}
		librarian = model.Librarian{Name: name, LibraryID: libraryID}
		return tx.Create(&librarian).Error
	})
	if err != nil {
		return model.Librarian{}, translateError(err)
	}
	return librarian, nil
}

func (s *LibrariesStore) requireLibraryAndBook(libraryID, bookID int64) error {
	var library model.Library
	if err := s.db.Select("id").First(&library, libraryID).Error; err != nil {
		return translateError(err)
	}
	var book model.Book
	if err := s.db.Select("id").First(&book, bookID).Error; err != nil {
		return translateError(err)
	}
	return nil
}
