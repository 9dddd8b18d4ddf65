package errors

import "net/http"

// ErrConversationNotFound covers both missing and foreign conversations,
// mirroring the task lookup behaviour.
var ErrConversationNotFound = &Exception{
	Code:       "CONVERSATION_NOT_FOUND",
	Message:    "Conversation not found.",
	StatusCode: http.StatusNotFound,
}
