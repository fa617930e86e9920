package store

import "bookshelf/pkg/model"

// LibrariesStore provides access to libraries, their book collections and
// their (at most one) librarian.
type LibrariesStore interface {
	ListLibraries() ([]model.Library, error)
	ShowLibrary(id int64) (model.Library, error)
	CreateLibrary(library *model.Library) error
	UpdateLibrary(library *model.Library) error
	// DeleteLibrary removes the library, its book associations and its
	// librarian record. The books themselves survive.
	DeleteLibrary(id int64) error

	// AddBook associates an existing book with the library. Adding a book
	// that is already present is a no-op.
	AddBook(libraryID, bookID int64) error
	// RemoveBook breaks the association only. ErrNotLinked when absent.
	RemoveBook(libraryID, bookID int64) error

	// SetLibrarian assigns the named librarian, replacing any previous one.
	SetLibrarian(libraryID int64, name string) (model.Librarian, error)
}
