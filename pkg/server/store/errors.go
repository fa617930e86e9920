package store

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness constraint would be
	// violated, such as registering an already-taken username.
	ErrDuplicate = errors.New("record already exists")

	// ErrNotLinked is returned when asked to remove an association that
	// is not present, such as unlinking a book from a library that does
	// not hold it.
	ErrNotLinked = errors.New("records are not linked")
)
