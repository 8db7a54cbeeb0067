package casestat

import "errors"

// ErrInvalidInput indicates a payload that fails client-side checks.
var ErrInvalidInput = errors.New("invalid case stat input")
