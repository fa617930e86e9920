package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure BooksStore implements store.BooksStore
var _ store.BooksStore = (*BooksStore)(nil)

// bookOrderings whitelists the columns a client may order listings by.
// Anything else falls back to the default title ordering.
var bookOrderings = map[string]string{
	"title":            "books.title",
	"publication_year": "books.publication_year",
}

// BooksStore implements store.BooksStore using GORM
type BooksStore struct {
	db *gorm.DB
}

// NewBooksStore creates a new BooksStore
func NewBooksStore(db *gorm.DB) *BooksStore {
	return &BooksStore{db: db}
}

// ListBooks returns books matching the filter, authors preloaded.
func (s *BooksStore) ListBooks(filter store.BookFilter) ([]model.Book, error) {
	query := s.db.Model(&model.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id").
		Preload("Author")

	if filter.Title != "" {
		query = query.Where("books.title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		query = query.Where("authors.name ILIKE ?", "%"+filter.Author+"%")
	}
	if filter.PublicationYear != nil {
		query = query.Where("books.publication_year = ?", *filter.PublicationYear)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("books.title ILIKE ? OR authors.name ILIKE ?", pattern, pattern)
	}

	query = query.Order(orderClause(filter.Ordering))

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var books []model.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, translateError(err)
	}
	return books, nil
}

// ShowBook retrieves a single book by ID, author preloaded.
func (s *BooksStore) ShowBook(id int64) (model.Book, error) {
	var book model.Book
	err := s.db.Preload("Author").First(&book, id).Error
	if err != nil {
		return model.Book{}, translateError(err)
	}
	return book, nil
}

// CreateBook persists a new book.
func (s *BooksStore) CreateBook(book *model.Book) error {
	return translateError(s.db.Create(book).Error)
}

// UpdateBook writes the book's title, publication year and author.
func (s *BooksStore) UpdateBook(book *model.Book) error {
	tx := s.db.Model(&model.Book{}).Where("id = ?", book.ID).Updates(map[string]interface{}{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"author_id":        book.AuthorID,
	})
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteBook removes a book by ID.
func (s *BooksStore) DeleteBook(id int64) error {
	tx := s.db.Delete(&model.Book{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func orderClause(ordering string) string {
	column := ordering
	desc := false
	if len(column) > 0 && column[0] == '-' {
		column = column[1:]
		desc = true
	}
	qualified, ok := bookOrderings[column]
	if !ok {
		return "books.title ASC"
	}
	if desc {
		return qualified + " DESC"
	}
	return qualified + " ASC"
}
