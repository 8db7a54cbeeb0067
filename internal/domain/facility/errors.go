package facility

import "errors"

// ErrInvalidInput indicates a payload that fails client-side checks.
var ErrInvalidInput = errors.New("invalid facility input")
