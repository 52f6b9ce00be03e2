package model

import "errors"

var (
	// ErrInvalidParameter is returned for malformed strategy or generator inputs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrCollaboratorUnavailable marks a failed call to an external service.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrNoteNotFound is returned when a vault note id does not exist
	ErrNoteNotFound = errors.New("note not found")

	// ErrUnknownSymbol is returned when a symbol is not in the universe
	ErrUnknownSymbol = errors.New("unknown symbol")
)
