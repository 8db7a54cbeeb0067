package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned for any non-2xx response from the API.
type RequestError struct {
	StatusCode int
	Message    string
	Method     string
	URL        string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed (%d): %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by a RequestError in err's
// chain, or 0 when there is none.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
