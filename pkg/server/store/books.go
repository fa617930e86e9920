package store

import "bookshelf/pkg/model"

// BookFilter narrows and orders a book listing. Zero values leave the
// corresponding constraint unapplied.
type BookFilter struct {
	// Title matches case-insensitively on a substring of the title.
	Title string
	// Author matches case-insensitively on a substring of the author name.
	Author string
	// PublicationYear matches exactly when non-nil.
	PublicationYear *int
	// Search matches case-insensitively against title or author name.
	Search string
	// Ordering names a sortable column, optionally prefixed with "-" for
	// descending order. Implementations reject columns outside their
	// whitelist by falling back to the default ordering.
	Ordering string
	// Limit caps the result set when positive. Offset skips rows when
	// positive.
	Limit  int
	Offset int
}

// BooksStore provides access to the book catalog.
type BooksStore interface {
	ListBooks(filter BookFilter) ([]model.Book, error)
	ShowBook(id int64) (model.Book, error)
	CreateBook(book *model.Book) error
	UpdateBook(book *model.Book) error
	DeleteBook(id int64) error
}
