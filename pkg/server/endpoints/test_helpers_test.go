package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"bookshelf/pkg/config"
	"bookshelf/pkg/model"
	"bookshelf/pkg/render"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/middleware"
	"bookshelf/pkg/token"
)

// testEnv bundles a server wired with mock stores for handler tests.
type testEnv struct {
	srv       *server.Server
	issuer    *token.Issuer
	books     *MockBooksStore
	authors   *MockAuthorsStore
	libraries *MockLibrariesStore
	users     *MockUsersStore
	posts     *MockPostsStore
	authz     *MockAuthzStore
	health    *MockHealthStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer := token.NewIssuer([]byte("test-key"), time.Hour)
	env := &testEnv{
		issuer:    issuer,
		books:     NewMockBooksStore(),
		authors:   NewMockAuthorsStore(),
		libraries: NewMockLibrariesStore(),
		users:     NewMockUsersStore(),
		posts:     NewMockPostsStore(),
		authz:     NewMockAuthzStore(),
		health:    NewMockHealthStore(),
	}

	cfg := &config.Config{
		TokenTTL:         3600,
		RegistrationOpen: true,
		DefaultRole:      "member",
	}

	env.srv = &server.Server{
		Config:        cfg,
		Router:        mux.NewRouter().UseEncodedPath(),
		Issuer:        issuer,
		Authenticator: middleware.NewAuthenticator(issuer),
		Renderer:      render.New(false),

		BooksStore:     env.books,
		AuthorsStore:   env.authors,
		LibrariesStore: env.libraries,
		UsersStore:     env.users,
		PostsStore:     env.posts,
		AuthzStore:     env.authz,
		HealthStore:    env.health,
	}

	RegisterAll(env.srv)
	return env
}

// tokenFor issues a signed token for the given user and role.
func (e *testEnv) tokenFor(t *testing.T, userID int64, username string, role model.Role) string {
	t.Helper()
	signed, err := e.issuer.Issue(&model.User{
		ID:       userID,
		Username: username,
		Profile:  &model.UserProfile{UserID: userID, Role: role},
	})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return signed
}

// request performs a request against the router and returns the recorder.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Token "+authToken)
	}

	rr := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals the response body into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
func strPtr(s string) *string { return &s }
