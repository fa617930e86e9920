package identity

import (
	"context"
	"net"

	"bookshelf/pkg/model"
	"bookshelf/pkg/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// It combines token claims with request-specific context.
type Identity struct {
	UserID   int64
	Username string
	Role     model.Role

	// RemoteIP is the client address, for audit records.
	RemoteIP net.IP
}

// FromClaims creates an Identity from parsed token claims.
func FromClaims(claims *token.Claims) *Identity {
	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
