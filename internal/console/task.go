package console

import (
	"fmt"
	"time"
)

// Task is a single to-do item in the console app. IDs are assigned by
// the store and never reused.
type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayRow formats the task as one line for the list view, with the
// description truncated to keep rows readable.
func (t *Task) DisplayRow() string {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}
	return fmt.Sprintf("%3d %s %-40s %s", t.ID, status, clip(t.Title, 40), truncate(t.Description, 30))
}

func clip(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
