package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when a unique constraint rejects an insert.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnavailable is returned when the backing store cannot serve a request.
	ErrUnavailable = errors.New("store unavailable")
)
