package errors

import "net/http"

var ErrInvalidSession = &Exception{
	Code:       "INVALID_SESSION",
	Message:    "Invalid session. Please sign in again.",
	StatusCode: http.StatusUnauthorized,
}
