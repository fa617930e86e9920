// Package db establishes the PostgreSQL connection used by the server and
// the command line tools. The connection URL comes from the DATABASE_URL
// environment variable unless a caller supplies one explicitly.
package db
