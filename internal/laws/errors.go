package laws

import "errors"

var (
	// ErrNotFound is returned when no legal unit has the requested id.
	ErrNotFound = errors.New("law not found")
	// ErrInvalidInput marks malformed ids or import entries.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedMetadata marks a stored metadata document that is not valid JSON.
	ErrMalformedMetadata = errors.New("malformed metadata")
)
