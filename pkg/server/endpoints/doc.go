// Package endpoints implements the bookshelf REST API handlers.
//
// Each file registers the routes for one resource family onto the server's
// router. Read routes are public; write routes require a token and are
// checked against the role permission matrix.
package endpoints
