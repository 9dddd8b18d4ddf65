package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

func (r RecurrencePattern) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is a user's to-do item. UserID is always set from the verified
// session token, never from a request payload. Rows are soft-deleted:
// gorm.DeletedAt keeps every query scoped to deleted_at IS NULL.
type Task struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            string            `gorm:"size:255;not null;index" json:"user_id"`
	Title             string            `gorm:"size:200;not null" json:"title"`
	Description       string            `gorm:"size:1000;not null;default:''" json:"description"`
	Completed         bool              `gorm:"not null;default:false;index" json:"completed"`
	Priority          TaskPriority      `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	DueDate           *time.Time        `gorm:"index" json:"due_date"`
	Tags              []string          `gorm:"serializer:json" json:"tags"`
	RecurrencePattern RecurrencePattern `gorm:"type:varchar(20);not null;default:'none'" json:"recurrence_pattern"`
	CreatedAt         time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
