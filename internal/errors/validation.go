package errors

import "net/http"

var ErrValidation = &Exception{
	Code:       "VALIDATION_ERROR",
	Message:    "Request validation failed",
	StatusCode: http.StatusUnprocessableEntity,
}

// Validation builds a VALIDATION_ERROR with a caller-facing message and
// optional field-level details.
func Validation(message string, details any) *Exception {
	return &Exception{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Details:    details,
	}
}
