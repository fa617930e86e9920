// Package server provides the HTTP server for the bookshelf API.
//
// This package implements the core HTTP server that handles all bookshelf
// REST API requests. It uses gorilla/mux for routing and provides middleware
// for authentication and request handling.
//
// # Server Setup
//
//	srv := server.NewServer(db, issuer, cfg, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - DB: Database connection
//   - Issuer: Access token signing and parsing
//   - Authenticator: Token validation middleware
//   - The store implementations the endpoints consume
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers all standard bookshelf API endpoints including:
//
//   - /api-token-auth/ - Token authentication
//   - /api/books/ - Book catalog
//   - /api/authors/ - Authors with nested books
//   - /api/libraries/ - Libraries, collections and librarians
//   - /api/posts/ - Blog posts, comments and tags
//   - /api/users/ - Registration and account management
package server
