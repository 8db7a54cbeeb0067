package outbreak

import "errors"

var (
	// ErrInvalidInput indicates a payload that fails client-side checks.
	ErrInvalidInput = errors.New("invalid outbreak input")
	// ErrInvalidStatus indicates an unknown status filter.
	ErrInvalidStatus = errors.New("invalid outbreak status filter")
)
