package errors

import "net/http"

var ErrDueDateRequired = &Exception{
	Message:    "Due date is required",
	StatusCode: http.StatusBadRequest,
}
