package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// newMockDB wraps a sqlmock connection with GORM for store unit tests.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err, "failed to open gorm")

	return gormDB, mock
}

func TestShowBookNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	booksStore := NewBooksStore(db)

	mock.ExpectQuery(`SELECT (.+) FROM "books"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "publication_year", "author_id"}))

	_, err := booksStore.ShowBook(42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	booksStore := NewBooksStore(db)

	// GORM wraps single writes in a transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "books"`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := booksStore.DeleteBook(42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBook(t *testing.T) {
	db, mock := newMockDB(t)
	booksStore := NewBooksStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "books"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, booksStore.DeleteBook(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleHasPermission(t *testing.T) {
	db, mock := newMockDB(t)
	authzStore := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("member", "can_view").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	granted, err := authzStore.RoleHasPermission(model.RoleMember, store.CanView)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleLacksPermission(t *testing.T) {
	db, mock := newMockDB(t)
	authzStore := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("member", "can_delete").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	granted, err := authzStore.RoleHasPermission(model.RoleMember, store.CanDelete)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckConnectivity(t *testing.T) {
	db, mock := newMockDB(t)
	healthStore := NewHealthStore(db)

	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, healthStore.CheckConnectivity())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		ordering string
		want     string
	}{
		{"", "books.title ASC"},
		{"title", "books.title ASC"},
		{"-title", "books.title DESC"},
		{"publication_year", "books.publication_year ASC"},
		{"-publication_year", "books.publication_year DESC"},
		{"id; DROP TABLE books", "books.title ASC"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, orderClause(c.ordering), "ordering %q", c.ordering)
	}
}
