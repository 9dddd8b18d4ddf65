package dto

import (
	"time"

	model "donext/internal/models"
)

type TaskListResponse struct {
	Tasks []model.Task `json:"tasks"`
	Total int          `json:"total"`
}

type ChatResponse struct {
	ConversationID uint             `json:"conversation_id"`
	Response       string           `json:"response"`
	ToolCalls      []model.ToolCall `json:"tool_calls"`
}

type MessageResponse struct {
	ID        uint             `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []model.ToolCall `json:"tool_calls"`
	CreatedAt time.Time        `json:"created_at"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the uniform envelope for every non-2xx reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
}
