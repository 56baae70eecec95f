package repository

import "errors"

var (
	// ErrNotFound: the referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate: an insert hit the (postId, volunteer.email) unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNoSlots: a decrement would take slotsRemaining below zero.
	ErrNoSlots = errors.New("no slots remaining")
)
