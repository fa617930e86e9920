// Package main provides bookshelfctl, the CLI for the bookshelf API server.
//
// Bookshelf is a book catalog and blog service with role-based access
// control. The HTTP API serves authors, books, libraries, blog posts and
// user accounts backed by PostgreSQL.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: Storage interfaces and their GORM implementations
//   - pkg/token: Auth token issuing and parsing
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//   - pkg/render: Markdown rendering for blog posts
//
// # Quick Start
//
//	# Run database migrations
//	bookshelfctl db migrate
//
//	# Create an admin user
//	bookshelfctl user create admin --role admin
//
//	# Start the server
//	export BOOKSHELF_TOKEN_KEY=$(head -c 32 /dev/urandom | base64)
//	bookshelfctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BOOKSHELF_TOKEN_KEY: Secret key used to sign auth tokens
//   - BOOKSHELF_CONFIG_PATH: Config file directory (default: /etc/bookshelf/config)
//   - BOOKSHELF_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main
