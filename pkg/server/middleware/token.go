// Package middleware provides HTTP middleware for the bookshelf server.
package middleware

import (
	"errors"
	"net"
	"net/http"
	"regexp"

	"bookshelf/pkg/identity"
	"bookshelf/pkg/token"
)

// tokenRegex accepts both the classic "Token <value>" scheme and the
// "Bearer <value>" scheme.
var tokenRegex = regexp.MustCompile(`^(?:Token|Bearer) (\S+)$`)

// Authenticator is middleware that validates access tokens and places the
// resulting identity on the request context.
type Authenticator struct {
	Issuer *token.Issuer
}

// NewAuthenticator creates a new Authenticator middleware
func NewAuthenticator(issuer *token.Issuer) *Authenticator {
	return &Authenticator{Issuer: issuer}
}

// Middleware returns an HTTP middleware that requires a valid token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.authenticate(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// Optional returns an HTTP middleware that sets the identity when a valid
// token is present but lets anonymous requests through. A malformed or
// expired token is still rejected rather than silently downgraded.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := a.authenticate(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	authHeader := r.Header.Get("Authorization")

	if len(authHeader) == 0 {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Authorization missing"))
		return nil, false
	}

	tokenMatches := tokenRegex.FindStringSubmatch(authHeader)

	if len(tokenMatches) != 2 {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Malformed authorization header"))
		return nil, false
	}

	claims, err := a.Issuer.Parse(tokenMatches[1])
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Token expired"))
			return nil, false
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Malformed authorization token"))
		return nil, false
	}

	id := identity.FromClaims(claims)
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		id.WithRemoteIP(net.ParseIP(host))
	}

	return id, true
}
