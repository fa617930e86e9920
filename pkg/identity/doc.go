// Package identity carries the authenticated identity of a request.
//
// The token package handles parsing and validating the raw access token.
// This package builds on that to provide the request-scoped view the
// endpoints consume: who the caller is, what role they hold, and where
// the request came from.
package identity
