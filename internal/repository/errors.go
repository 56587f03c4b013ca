package repository

import "errors"

var (
	// ErrSessionConflict is returned when a punch-in is attempted while an
	// open session already exists for the same user and civil date.
	ErrSessionConflict = errors.New("an open attendance session already exists for today")

	// ErrNotFound is returned when a row required by the operation does not
	// exist.
	ErrNotFound = errors.New("record not found")
)
