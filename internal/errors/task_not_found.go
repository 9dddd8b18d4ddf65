package errors

import "net/http"

// ErrTaskNotFound is returned both when a task does not exist and when
// it belongs to another user, so callers cannot probe for foreign ids.
var ErrTaskNotFound = &Exception{
	Code:       "TASK_NOT_FOUND",
	Message:    "Task not found",
	StatusCode: http.StatusNotFound,
}
