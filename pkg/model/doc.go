// Package model contains the GORM database models for the bookshelf
// service: the book catalog (authors, books, libraries, librarians),
// user accounts with role profiles, and the blog (posts, comments,
// tags).
package model
