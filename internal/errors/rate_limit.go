package errors

import "net/http"

var ErrRateLimitExceeded = &Exception{
	Code:       "RATE_LIMIT_EXCEEDED",
	Message:    "Too many requests. Please try again later.",
	StatusCode: http.StatusTooManyRequests,
}

// RateLimited reports how long the caller should back off before
// retrying.
func RateLimited(retryAfterSeconds int) *Exception {
	return &Exception{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests. Please try again later.",
		StatusCode: http.StatusTooManyRequests,
		Details:    map[string]any{"retry_after_seconds": retryAfterSeconds},
	}
}
