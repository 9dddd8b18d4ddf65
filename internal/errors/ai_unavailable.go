package errors

import "net/http"

var ErrAIServiceUnavailable = &Exception{
	Code:       "AI_SERVICE_UNAVAILABLE",
	Message:    "AI service is temporarily unavailable. Please try again.",
	StatusCode: http.StatusServiceUnavailable,
}

// AIUnavailable builds an AI_SERVICE_UNAVAILABLE with a specific
// caller-facing message, such as a timeout notice.
func AIUnavailable(message string) *Exception {
	return &Exception{
		Code:       "AI_SERVICE_UNAVAILABLE",
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}
