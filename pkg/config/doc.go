// Package config provides configuration management for the bookshelf server.
//
// This package handles loading and validating server configuration from
// environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - BOOKSHELF_TOKEN_KEY: Access token signing key
//   - BOOKSHELF_TOKEN_TTL: Access token lifetime in seconds
//   - BOOKSHELF_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config
