package storage

import "errors"

// Storage error constants
var (
	// ErrMovieNotFound is returned when a movie is not found
	ErrMovieNotFound = errors.New("movie not found")

	// ErrDuplicateMovie is returned when attempting to create a movie that already exists
	ErrDuplicateMovie = errors.New("movie already exists")

	// ErrDatabaseClosed is returned when attempting to use a closed database connection
	ErrDatabaseClosed = errors.New("database is closed")
)
