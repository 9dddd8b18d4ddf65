package errors

import "net/http"

var ErrAuthentication = &Exception{
	Code:       "AUTHENTICATION_ERROR",
	Message:    "Not authenticated",
	StatusCode: http.StatusUnauthorized,
}
