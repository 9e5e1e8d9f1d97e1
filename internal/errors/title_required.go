package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "Task title is required",
	StatusCode: http.StatusBadRequest,
}
