package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

func activeUser(t *testing.T, password string) model.User {
	t.Helper()
	user := model.User{
		ID:       5,
		Username: "alice",
		IsActive: true,
		Profile:  &model.UserProfile{UserID: 5, Role: model.RoleMember},
	}
	require.NoError(t, user.SetPassword(password))
	return user
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindUser", "alice").Return(activeUser(t, "s3cretpass"), nil)

	rr := env.request(t, "POST", "/api-token-auth/", TokenRequest{
		Username: "alice",
		Password: "s3cretpass",
	}, "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp TokenResponse
	decodeBody(t, rr, &resp)
	require.NotEmpty(t, resp.Token)

	// The issued token authenticates follow-up requests.
	claims, err := env.issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, model.RoleMember, claims.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindUser", "alice").Return(activeUser(t, "s3cretpass"), nil)

	rr := env.request(t, "POST", "/api-token-auth/", TokenRequest{
		Username: "alice",
		Password: "wrong",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindUser", "nobody").Return(model.User{}, store.ErrNotFound)

	rr := env.request(t, "POST", "/api-token-auth/", TokenRequest{
		Username: "nobody",
		Password: "whatever",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	env := newTestEnv(t)
	user := activeUser(t, "s3cretpass")
	user.IsActive = false
	env.users.On("FindUser", "alice").Return(user, nil)

	rr := env.request(t, "POST", "/api-token-auth/", TokenRequest{
		Username: "alice",
		Password: "s3cretpass",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.request(t, "POST", "/api-token-auth/", map[string]string{
		"username": "alice",
	}, "")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var fields map[string][]string
	decodeBody(t, rr, &fields)
	assert.Contains(t, fields, "non_field_errors")
}
