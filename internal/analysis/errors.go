package analysis

import "errors"

var (
	// ErrModelUnavailable means the frozen artifacts were not loaded. It is a
	// boot-time failure; a running service always has its models.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrEmptyDocument rejects blank input.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrUnsupportedDocument marks uploads whose text cannot be extracted.
	ErrUnsupportedDocument = errors.New("unsupported document")
)
