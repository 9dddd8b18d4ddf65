package errors

import (
	"errors"
	"net/http"
)

// Exception is an application error carrying a stable machine-readable
// code and the HTTP status it maps to. Services and repositories return
// these; the HTTP error handler renders them as the error envelope and
// the agent toolset flattens them into tool result payloads.
type Exception struct {
	Code       string
	Message    string
	StatusCode int
	Details    any
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches Exceptions by code so errors.Is works against the package
// sentinels even for instances built with extra details.
func (e *Exception) Is(target error) bool {
	var other *Exception
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// From extracts the Exception wrapped in err, or nil if there is none.
func From(err error) *Exception {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
