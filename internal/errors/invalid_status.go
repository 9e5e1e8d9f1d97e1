package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "Invalid status. Must be todo, in-progress, review, blocked, or completed",
	StatusCode: http.StatusBadRequest,
}
