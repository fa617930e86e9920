package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"bookshelf/pkg/server/store"
)

// translateError maps GORM and driver errors onto the store's sentinel
// errors so callers never depend on the backend.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	// lib/pq unique_violation is SQLSTATE 23505.
	if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
		return store.ErrDuplicate
	}
	return err
}
