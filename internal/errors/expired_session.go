package errors

import "net/http"

var ErrExpiredSession = &Exception{
	Code:       "EXPIRED_SESSION",
	Message:    "Session expired. Please sign in again.",
	StatusCode: http.StatusUnauthorized,
}
