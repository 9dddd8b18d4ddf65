package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "donext/internal/errors"
	model "donext/internal/models"
	repository "donext/internal/repositories"
)

// Tool names exposed to the language model.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
)

// Definition describes one callable tool to the language model.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]Param
	Required    []string
}

// Param describes a single tool argument.
type Param struct {
	Type        string
	Description string
	Enum        []string
}

// Toolset is the capability object handed to the agent runtime: five
// task operations with the owner fixed at construction. The model never
// sees or supplies the owner id, so every call it makes is scoped to
// the authenticated user.
type Toolset struct {
	owner string
	tasks *repository.TaskRepository
}

func NewToolset(owner string, tasks *repository.TaskRepository) *Toolset {
	return &Toolset{owner: owner, tasks: tasks}
}

// Owner returns the user id this toolset is bound to.
func (t *Toolset) Owner() string {
	return t.owner
}

func (t *Toolset) Definitions() []Definition {
	return []Definition{
		{
			Name:        ToolAddTask,
			Description: "Create a new todo task for the user.",
			Parameters: map[string]Param{
				"title":       {Type: "string", Description: "The task title (required)."},
				"description": {Type: "string", Description: "Optional task description."},
				"due_date":    {Type: "string", Description: "Optional due date in ISO format (YYYY-MM-DD)."},
			},
			Required: []string{"title"},
		},
		{
			Name:        ToolListTasks,
			Description: "List the user's todo tasks, optionally filtered by status.",
			Parameters: map[string]Param{
				"status": {
					Type:        "string",
					Description: "Filter by status - 'all', 'pending', or 'completed'.",
					Enum:        []string{"all", "pending", "completed"},
				},
			},
		},
		{
			Name:        ToolCompleteTask,
			Description: "Mark a task as completed.",
			Parameters: map[string]Param{
				"task_id": {Type: "integer", Description: "The ID of the task to complete."},
			},
			Required: []string{"task_id"},
		},
		{
			Name:        ToolDeleteTask,
			Description: "Delete a task (soft delete).",
			Parameters: map[string]Param{
				"task_id": {Type: "integer", Description: "The ID of the task to delete."},
			},
			Required: []string{"task_id"},
		},
		{
			Name:        ToolUpdateTask,
			Description: "Update an existing task's title, description, or due date.",
			Parameters: map[string]Param{
				"task_id":     {Type: "integer", Description: "The ID of the task to update."},
				"title":       {Type: "string", Description: "New title (optional)."},
				"description": {Type: "string", Description: "New description (optional)."},
				"due_date":    {Type: "string", Description: "New due date in ISO format YYYY-MM-DD (optional)."},
			},
			Required: []string{"task_id"},
		},
	}
}

// Dispatch runs the named tool and always returns a result envelope;
// failures come back as {success: false, error, error_code} rather than
// Go errors so the model can read and react to them.
func (t *Toolset) Dispatch(ctx context.Context, name string, args map[string]any) map[string]any {
	switch name {
	case ToolAddTask:
		return t.addTask(ctx, args)
	case ToolListTasks:
		return t.listTasks(ctx, args)
	case ToolCompleteTask:
		return t.completeTask(ctx, args)
	case ToolDeleteTask:
		return t.deleteTask(ctx, args)
	case ToolUpdateTask:
		return t.updateTask(ctx, args)
	default:
		return failure(fmt.Sprintf("Unknown tool: %s", name), "UNKNOWN_TOOL")
	}
}

func (t *Toolset) addTask(ctx context.Context, args map[string]any) map[string]any {
	title := strings.TrimSpace(stringArg(args, "title"))
	description := strings.TrimSpace(stringArg(args, "description"))

	if title == "" {
		return failure("Title cannot be empty.", "VALIDATION_ERROR")
	}
	if utf8.RuneCountInString(title) > 200 {
		return failure("Title must be 200 characters or less.", "VALIDATION_ERROR")
	}
	if utf8.RuneCountInString(description) > 1000 {
		return failure("Description must be 1000 characters or less.", "VALIDATION_ERROR")
	}

	var dueDate *time.Time
	if raw := stringArg(args, "due_date"); raw != "" {
		parsed, err := parseDueDate(raw)
		if err != nil {
			return failure(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD.", raw), "VALIDATION_ERROR")
		}
		dueDate = &parsed
	}

	task := &model.Task{
		UserID:      t.owner,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}
	if err := t.tasks.Create(ctx, task); err != nil {
		return errorEnvelope(err)
	}

	return map[string]any{
		"success":     true,
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"status":      "pending",
		"message":     fmt.Sprintf("Task '%s' created successfully.", task.Title),
	}
}

func (t *Toolset) listTasks(ctx context.Context, args map[string]any) map[string]any {
	var completed *bool
	switch stringArg(args, "status") {
	case "pending":
		completed = boolPtr(false)
	case "completed":
		completed = boolPtr(true)
	}

	tasks, err := t.tasks.List(ctx, t.owner, completed)
	if err != nil {
		return errorEnvelope(err)
	}

	taskList := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		taskList = append(taskList, map[string]any{
			"task_id":     task.ID,
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
			"priority":    string(task.Priority),
			"created_at":  task.CreatedAt.Format(time.RFC3339),
		})
	}

	return map[string]any{
		"success": true,
		"tasks":   taskList,
		"count":   len(taskList),
		"message": fmt.Sprintf("Found %d task(s).", len(taskList)),
	}
}

func (t *Toolset) completeTask(ctx context.Context, args map[string]any) map[string]any {
	id, ok := taskIDArg(args)
	if !ok {
		return failure("task_id is required and must be a positive integer.", "VALIDATION_ERROR")
	}

	task, err := t.tasks.FindOwned(ctx, t.owner, id, "complete")
	if err != nil {
		return errorEnvelope(err)
	}

	if task.Completed {
		return map[string]any{
			"success": true,
			"task_id": task.ID,
			"title":   task.Title,
			"status":  "completed",
			"message": fmt.Sprintf("Task '%s' is already completed.", task.Title),
		}
	}

	task.Completed = true
	if err := t.tasks.Save(ctx, task); err != nil {
		return errorEnvelope(err)
	}

	return map[string]any{
		"success":      true,
		"task_id":      task.ID,
		"title":        task.Title,
		"status":       "completed",
		"completed_at": task.UpdatedAt.Format(time.RFC3339),
		"message":      fmt.Sprintf("Task '%s' marked as completed.", task.Title),
	}
}

func (t *Toolset) deleteTask(ctx context.Context, args map[string]any) map[string]any {
	id, ok := taskIDArg(args)
	if !ok {
		return failure("task_id is required and must be a positive integer.", "VALIDATION_ERROR")
	}

	task, err := t.tasks.FindOwned(ctx, t.owner, id, "delete")
	if err != nil {
		return errorEnvelope(err)
	}

	if err := t.tasks.SoftDelete(ctx, task); err != nil {
		return errorEnvelope(err)
	}

	return map[string]any{
		"success": true,
		"task_id": task.ID,
		"title":   task.Title,
		"message": fmt.Sprintf("Task '%s' deleted successfully.", task.Title),
	}
}

func (t *Toolset) updateTask(ctx context.Context, args map[string]any) map[string]any {
	id, ok := taskIDArg(args)
	if !ok {
		return failure("task_id is required and must be a positive integer.", "VALIDATION_ERROR")
	}

	hasTitle := hasArg(args, "title")
	hasDescription := hasArg(args, "description")
	hasDueDate := hasArg(args, "due_date")
	if !hasTitle && !hasDescription && !hasDueDate {
		return failure("At least one field (title, description, or due_date) must be provided.", "VALIDATION_ERROR")
	}

	task, err := t.tasks.FindOwned(ctx, t.owner, id, "update")
	if err != nil {
		return errorEnvelope(err)
	}

	if hasTitle {
		title := strings.TrimSpace(stringArg(args, "title"))
		if title == "" {
			return failure("Title cannot be empty.", "VALIDATION_ERROR")
		}
		if utf8.RuneCountInString(title) > 200 {
			return failure("Title must be 200 characters or less.", "VALIDATION_ERROR")
		}
		task.Title = title
	}
	if hasDescription {
		description := strings.TrimSpace(stringArg(args, "description"))
		if utf8.RuneCountInString(description) > 1000 {
			return failure("Description must be 1000 characters or less.", "VALIDATION_ERROR")
		}
		task.Description = description
	}
	if hasDueDate {
		raw := stringArg(args, "due_date")
		parsed, err := parseDueDate(raw)
		if err != nil {
			return failure(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD.", raw), "VALIDATION_ERROR")
		}
		task.DueDate = &parsed
	}

	if err := t.tasks.Save(ctx, task); err != nil {
		return errorEnvelope(err)
	}

	return map[string]any{
		"success":     true,
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"updated_at":  task.UpdatedAt.Format(time.RFC3339),
		"message":     fmt.Sprintf("Task '%s' updated successfully.", task.Title),
	}
}

// parseDueDate accepts a plain date or a full timestamp and normalizes
// to UTC.
func parseDueDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s", raw)
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// hasArg reports whether the model actually supplied a value; explicit
// nulls count as absent.
func hasArg(args map[string]any, key string) bool {
	v, ok := args[key]
	return ok && v != nil
}

func taskIDArg(args map[string]any) (uint, bool) {
	switch v := args["task_id"].(type) {
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	case int64:
		if v > 0 {
			return uint(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

func boolPtr(v bool) *bool {
	return &v
}

func failure(message, code string) map[string]any {
	return map[string]any{
		"success":    false,
		"error":      message,
		"error_code": code,
	}
}

func errorEnvelope(err error) map[string]any {
	if ex := apperrors.From(err); ex != nil {
		return failure(ex.Message, ex.Code)
	}
	return failure("Something went wrong. Please try again.", "INTERNAL_ERROR")
}
