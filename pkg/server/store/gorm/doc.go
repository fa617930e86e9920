// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// This package contains concrete implementations that use GORM against
// PostgreSQL. The interfaces they implement are defined in pkg/server/store.
package gorm
