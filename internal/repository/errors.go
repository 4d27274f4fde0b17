package repository

import "errors"

var (
	// ErrNotFound is returned when a gathering or member lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when creating a gathering with an ID already in use.
	ErrDuplicateID = errors.New("id already exists")

	// ErrDuplicateName is returned when a member name matches an existing one,
	// ignoring case.
	ErrDuplicateName = errors.New("name already exists")

	// ErrAlreadyMember is returned when adding a member twice to a gathering.
	ErrAlreadyMember = errors.New("already a member of this gathering")

	// ErrClosed is returned for mutations of a closed gathering.
	ErrClosed = errors.New("gathering is closed")

	// ErrInvalidAmount is returned for expenses that are not strictly positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidInput is returned for blank IDs and names.
	ErrInvalidInput = errors.New("invalid input")
)
