package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/pkg/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       7,
		Username: "alice",
		Profile:  &model.UserProfile{UserID: 7, Role: model.RoleLibrarian},
	}
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), time.Hour)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleLibrarian, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseExpired(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), time.Minute)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = issuer.Parse(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseWrongKey(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), time.Hour)
	other := NewIssuer([]byte("other-key"), time.Hour)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseGarbage(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), time.Hour)

	_, err := issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUniqueTokenIDs(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), time.Hour)

	first, err := issuer.Issue(testUser())
	require.NoError(t, err)
	second, err := issuer.Issue(testUser())
	require.NoError(t, err)

	a, err := issuer.Parse(first)
	require.NoError(t, err)
	b, err := issuer.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDefaultTTL(t *testing.T) {
	issuer := NewIssuer([]byte("test-key"), 0)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, DefaultTTL, lifetime)
}
