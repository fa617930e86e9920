// Package store defines the persistence interfaces consumed by the HTTP
// endpoints, together with the filter types and sentinel errors they share.
// Implementations live in subpackages, keyed by backend.
package store
