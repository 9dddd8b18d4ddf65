package errors

import "net/http"

var ErrNotReady = &Exception{
	Code:       "SERVICE_UNAVAILABLE",
	Message:    "Database connection failed",
	StatusCode: http.StatusServiceUnavailable,
}
