package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is one chat thread owned by a single user. UpdatedAt is
// bumped whenever a message lands so threads sort by recent activity.
type Conversation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"size:255;not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message is a single chat turn. Messages are append-only: nothing in
// the codebase updates or deletes them once written.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	UserID         string    `gorm:"size:255;not null;index" json:"user_id"`
	Role           string    `gorm:"size:50;not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ToolCallsJSON  *string   `gorm:"type:text" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// ToolCall records one tool invocation made by the agent while producing
// an assistant message, with the arguments it passed and the result
// envelope the tool returned.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Result map[string]any `json:"result"`
}
