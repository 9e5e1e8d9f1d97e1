package errors

import (
	"errors"
	"net/http"
)

// Exception is an error carrying the HTTP status the request layer
// should answer with when the error reaches it.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode resolves err to an HTTP status, defaulting to 500 for
// anything that is not an Exception (storage I/O failures and the like).
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
