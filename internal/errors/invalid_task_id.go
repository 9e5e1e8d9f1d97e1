package errors

import "net/http"

var ErrInvalidTaskID = &Exception{
	Message:    "Task id must be a number",
	StatusCode: http.StatusBadRequest,
}
