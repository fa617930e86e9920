package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

func TestListAuthorsNestsBooks(t *testing.T) {
	env := newTestEnv(t)
	env.authors.On("ListAuthors", "").Return([]model.Author{
		{
			ID:   3,
			Name: "Ursula K. Le Guin",
			Books: []model.Book{
				{ID: 1, Title: "The Dispossessed", PublicationYear: 1974, AuthorID: 3},
				{ID: 2, Title: "The Left Hand of Darkness", PublicationYear: 1969, AuthorID: 3},
			},
		},
	}, nil)

	rr := env.request(t, "GET", "/api/authors/", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []AuthorResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp, 1)
	require.Len(t, resp[0].Books, 2)
	assert.Equal(t, "The Dispossessed", resp[0].Books[0].Title)
}

func TestListAuthorsPassesSearch(t *testing.T) {
	env := newTestEnv(t)
	env.authors.On("ListAuthors", "guin").Return([]model.Author{}, nil)

	rr := env.request(t, "GET", "/api/authors/?search=guin", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	env.authors.AssertExpectations(t)
}

func TestShowAuthorNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.authors.On("ShowAuthor", int64(99)).Return(model.Author{}, store.ErrNotFound)

	rr := env.request(t, "GET", "/api/authors/99/", nil, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanCreate).Return(true, nil)
	env.authors.On("CreateAuthor", mock.AnythingOfType("*model.Author")).Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(0).(*model.Author).ID = 4
		})

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "POST", "/api/authors/", AuthorRequest{Name: strPtr("Octavia Butler")}, authToken)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp AuthorResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, int64(4), resp.ID)
	assert.Equal(t, "Octavia Butler", resp.Name)
	assert.Empty(t, resp.Books)
}

func TestCreateAuthorMissingName(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleAdmin, store.CanCreate).Return(true, nil)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "POST", "/api/authors/", map[string]string{}, authToken)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var fields map[string][]string
	decodeBody(t, rr, &fields)
	assert.Contains(t, fields, "name")
}

func TestCreateAuthorUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rr := env.request(t, "POST", "/api/authors/", AuthorRequest{Name: strPtr("Nobody")}, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env.authors.AssertNotCalled(t, "CreateAuthor")
}

func TestUpdateAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleAdmin, store.CanEdit).Return(true, nil)
	env.authors.On("UpdateAuthor", &model.Author{ID: 3, Name: "U. K. Le Guin"}).Return(nil)
	env.authors.On("ShowAuthor", int64(3)).Return(model.Author{ID: 3, Name: "U. K. Le Guin"}, nil)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "PUT", "/api/authors/3/", AuthorRequest{Name: strPtr("U. K. Le Guin")}, authToken)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp AuthorResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "U. K. Le Guin", resp.Name)
}

func TestDeleteAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleAdmin, store.CanDelete).Return(true, nil)
	env.authors.On("DeleteAuthor", int64(3)).Return(nil)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "DELETE", "/api/authors/3/", nil, authToken)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
