package repository

import "errors"

// Sentinel errors surfaced by all repository implementations. Services
// translate these into the domain error taxonomy.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)
