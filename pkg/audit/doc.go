// Package audit provides audit logging for bookshelf operations.
//
// This package implements structured audit logging for security-relevant
// operations such as authentication attempts, role changes, and catalog
// writes.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Authentication events (success/failure)
//   - Catalog change events (create/update/delete)
//   - Role change events
//
// Audit events are logged in RFC5424 syslog format suitable for security
// monitoring and compliance requirements.
package audit
