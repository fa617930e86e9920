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

func TestListLibraries(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("ListLibraries").Return([]model.Library{
		{
			ID:   1,
			Name: "Central",
			Books: []model.Book{
				{ID: 2, Title: "Dune", PublicationYear: 1965},
			},
			Librarian: &model.Librarian{ID: 3, Name: "Marian", LibraryID: 1},
		},
		{ID: 2, Name: "Annex"},
	}, nil)

	rr := env.request(t, "GET", "/api/libraries/", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []LibraryResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp, 2)
	require.NotNil(t, resp[0].Librarian)
	assert.Equal(t, "Marian", resp[0].Librarian.Name)
	assert.Nil(t, resp[1].Librarian)
}

func TestShowLibraryNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("ShowLibrary", int64(99)).Return(model.Library{}, store.ErrNotFound)

	rr := env.request(t, "GET", "/api/libraries/99/", nil, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("CreateLibrary", mock.AnythingOfType("*model.Library")).Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(0).(*model.Library).ID = 4
		})

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "POST", "/api/libraries/", LibraryRequest{Name: strPtr("Branch")}, authToken)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp LibraryResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, int64(4), resp.ID)
	assert.Nil(t, resp.Librarian)
}

func TestCreateLibraryForbiddenForMember(t *testing.T) {
	env := newTestEnv(t)

	authToken := env.tokenFor(t, 2, "alice", model.RoleMember)
	rr := env.request(t, "POST", "/api/libraries/", LibraryRequest{Name: strPtr("Branch")}, authToken)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	env.libraries.AssertNotCalled(t, "CreateLibrary")
}

// Library lifecycle is reserved for admins; the permission matrix never
// applies, so a librarian with can_create is still refused.
func TestCreateLibraryForbiddenForLibrarian(t *testing.T) {
	env := newTestEnv(t)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "POST", "/api/libraries/", LibraryRequest{Name: strPtr("Branch")}, authToken)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	env.authz.AssertNotCalled(t, "RoleHasPermission")
	env.libraries.AssertNotCalled(t, "CreateLibrary")
}

func TestDeleteLibraryForbiddenForLibrarian(t *testing.T) {
	env := newTestEnv(t)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "DELETE", "/api/libraries/1/", nil, authToken)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	env.libraries.AssertNotCalled(t, "DeleteLibrary")
}

func TestSetLibrarianForbiddenForLibrarian(t *testing.T) {
	env := newTestEnv(t)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "PUT", "/api/libraries/1/librarian/", LibrarianRequest{Name: strPtr("Marian")}, authToken)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	env.libraries.AssertNotCalled(t, "SetLibrarian")
}

func TestUpdateLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)
	env.libraries.On("UpdateLibrary", &model.Library{ID: 1, Name: "Main Branch"}).Return(nil)
	env.libraries.On("ShowLibrary", int64(1)).Return(model.Library{ID: 1, Name: "Main Branch"}, nil)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "PUT", "/api/libraries/1/", LibraryRequest{Name: strPtr("Main Branch")}, authToken)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp LibraryResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "Main Branch", resp.Name)
}

func TestDeleteLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("DeleteLibrary", int64(1)).Return(nil)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "DELETE", "/api/libraries/1/", nil, authToken)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAddLibraryBook(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)
	env.libraries.On("AddBook", int64(1), int64(2)).Return(nil)
	env.libraries.On("ShowLibrary", int64(1)).Return(model.Library{
		ID:    1,
		Name:  "Central",
		Books: []model.Book{{ID: 2, Title: "Dune", PublicationYear: 1965}},
	}, nil)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "POST", "/api/libraries/1/books/", LibraryBookRequest{Book: int64Ptr(2)}, authToken)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp LibraryResponse
	decodeBody(t, rr, &resp)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Dune", resp.Books[0].Title)
}

func TestAddLibraryBookMissingField(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "POST", "/api/libraries/1/books/", map[string]string{}, authToken)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var fields map[string][]string
	decodeBody(t, rr, &fields)
	assert.Equal(t, []string{"This field is required."}, fields["book_id"])
}

func TestAddLibraryBookUnknownBook(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)
	env.libraries.On("AddBook", int64(1), int64(99)).Return(store.ErrNotFound)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "POST", "/api/libraries/1/books/", LibraryBookRequest{Book: int64Ptr(99)}, authToken)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRemoveLibraryBook(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)
	env.libraries.On("RemoveBook", int64(1), int64(2)).Return(nil)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "DELETE", "/api/libraries/1/books/2/", nil, authToken)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRemoveLibraryBookNotLinked(t *testing.T) {
	env := newTestEnv(t)
	env.authz.On("RoleHasPermission", model.RoleLibrarian, store.CanEdit).Return(true, nil)
	env.libraries.On("RemoveBook", int64(1), int64(2)).Return(store.ErrNotLinked)

	authToken := env.tokenFor(t, 5, "lib", model.RoleLibrarian)
	rr := env.request(t, "DELETE", "/api/libraries/1/books/2/", nil, authToken)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSetLibrarian(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("SetLibrarian", int64(1), "Marian").
		Return(model.Librarian{ID: 3, Name: "Marian", LibraryID: 1}, nil)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "PUT", "/api/libraries/1/librarian/", LibrarianRequest{Name: strPtr("Marian")}, authToken)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp LibrarianRef
	decodeBody(t, rr, &resp)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "Marian", resp.Name)
}

func TestSetLibrarianMissingLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.libraries.On("SetLibrarian", int64(99), "Marian").
		Return(model.Librarian{}, store.ErrNotFound)

	authToken := env.tokenFor(t, 1, "admin", model.RoleAdmin)
	rr := env.request(t, "PUT", "/api/libraries/99/librarian/", LibrarianRequest{Name: strPtr("Marian")}, authToken)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
