package store

import "bookshelf/pkg/model"

// AuthorsStore provides access to authors and their books.
type AuthorsStore interface {
	// ListAuthors returns authors with their books preloaded. A non-empty
	// search narrows to names containing it, case-insensitively.
	ListAuthors(search string) ([]model.Author, error)
	// ShowAuthor returns one author with books preloaded.
	ShowAuthor(id int64) (model.Author, error)
	CreateAuthor(author *model.Author) error
	UpdateAuthor(author *model.Author) error
	// DeleteAuthor removes the author and, by cascade, their books.
	DeleteAuthor(id int64) error
}
