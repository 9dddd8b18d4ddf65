package dto

import "time"

type CreateTaskRequest struct {
	Title             string     `json:"title" validate:"required,max=200"`
	Description       string     `json:"description" validate:"max=1000"`
	Priority          string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate           *time.Time `json:"due_date"`
	Tags              []string   `json:"tags"`
	RecurrencePattern string     `json:"recurrence_pattern" validate:"omitempty,oneof=none daily weekly monthly"`
}

// UpdateTaskRequest uses pointers so absent fields are left untouched.
type UpdateTaskRequest struct {
	Title             *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description       *string    `json:"description" validate:"omitempty,max=1000"`
	Completed         *bool      `json:"completed"`
	Priority          *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate           *time.Time `json:"due_date"`
	Tags              *[]string  `json:"tags"`
	RecurrencePattern *string    `json:"recurrence_pattern" validate:"omitempty,oneof=none daily weekly monthly"`
}

type ChatRequest struct {
	ConversationID *uint  `json:"conversation_id"`
	Message        string `json:"message" validate:"required,max=2000"`
}
