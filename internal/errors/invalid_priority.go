package errors

import "net/http"

var ErrInvalidPriority = &Exception{
	Message:    "Invalid priority. Must be low, medium, or high",
	StatusCode: http.StatusBadRequest,
}
