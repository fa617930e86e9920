// Package token issues and parses the signed access tokens handed out by
// the authentication endpoint. Tokens are HS256 JWTs carrying the user ID
// and role; the signing key comes from configuration.
package token
