package endpoints

import (
	"net/http"

	"bookshelf/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthenticateEndpoint(srv)
	RegisterUsersEndpoints(srv)
	RegisterBooksEndpoints(srv)
	RegisterAuthorsEndpoints(srv)
	RegisterLibrariesEndpoints(srv)
	RegisterPostsEndpoints(srv)
	RegisterStatusEndpoints(srv)
}

// authed wraps a handler with the token middleware. Used on write routes
// so that reads on the same prefix stay public.
func authed(srv *server.Server, h http.HandlerFunc) http.Handler {
	return srv.Authenticator.Middleware(h)
}
