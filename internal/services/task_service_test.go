package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"donext/internal/audit"
	apperrors "donext/internal/errors"
	model "donext/internal/models"
	repository "donext/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.Task{}, &model.Conversation{}, &model.Message{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTaskService(t *testing.T) *TaskService {
	db := setupTestDB(t)
	return NewTaskService(repository.NewTaskRepository(db, audit.Nop()))
}

func TestTaskService_CreateAndGet(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task, err := service.Create(ctx, "svc-create", CreateTaskInput{
		Title:             "Write report",
		Description:       "Quarterly numbers",
		Priority:          model.PriorityHigh,
		DueDate:           &due,
		Tags:              []string{"work", "urgent"},
		RecurrencePattern: model.RecurrenceWeekly,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if task.ID == 0 {
		t.Error("expected task ID to be set")
	}

	fetched, err := service.Get(ctx, "svc-create", task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if fetched.Title != "Write report" {
		t.Errorf("expected title to round-trip, got %s", fetched.Title)
	}
	if fetched.Priority != model.PriorityHigh {
		t.Errorf("expected priority high, got %s", fetched.Priority)
	}
	if fetched.RecurrencePattern != model.RecurrenceWeekly {
		t.Errorf("expected weekly recurrence, got %s", fetched.RecurrencePattern)
	}
	if len(fetched.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(fetched.Tags))
	}
	if fetched.DueDate == nil || !fetched.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, fetched.DueDate)
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		input   CreateTaskInput
		message string
	}{
		{"empty title", CreateTaskInput{Title: ""}, "Title cannot be empty."},
		{"title too long", CreateTaskInput{Title: strings.Repeat("a", 201)}, "Title must be 200 characters or less."},
		{"description too long", CreateTaskInput{Title: "ok", Description: strings.Repeat("a", 1001)}, "Description must be 1000 characters or less."},
		{"bad priority", CreateTaskInput{Title: "ok", Priority: "urgent"}, "Priority must be one of: low, medium, high."},
		{"bad recurrence", CreateTaskInput{Title: "ok", RecurrencePattern: "yearly"}, "Recurrence pattern must be one of: none, daily, weekly, monthly."},
	}

	for _, tc := range cases {
		_, err := service.Create(ctx, "svc-validation", tc.input)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
			continue
		}
		if ex := apperrors.From(err); ex.Message != tc.message {
			t.Errorf("%s: expected message %q, got %q", tc.name, tc.message, ex.Message)
		}
	}
}

func TestTaskService_Update(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "svc-update", CreateTaskInput{Title: "Before"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	title := "After"
	completed := true
	updated, err := service.Update(ctx, "svc-update", task.ID, UpdateTaskInput{
		Title:     &title,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("expected new title, got %s", updated.Title)
	}
	if !updated.Completed {
		t.Error("expected task to be completed")
	}
	if updated.Description != "" {
		t.Errorf("expected untouched description, got %q", updated.Description)
	}
}

func TestTaskService_Update_NoFields(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "svc-update-empty", CreateTaskInput{Title: "Task"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	_, err = service.Update(ctx, "svc-update-empty", task.ID, UpdateTaskInput{})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for empty update, got %v", err)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	service := newTaskService(t)

	title := "New"
	_, err := service.Update(context.Background(), "svc-update-missing", 999999, UpdateTaskInput{Title: &title})
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_ToggleComplete(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "svc-toggle", CreateTaskInput{Title: "Flip me"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	toggled, err := service.ToggleComplete(ctx, "svc-toggle", task.ID)
	if err != nil {
		t.Fatalf("failed to toggle task: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected task to be completed after first toggle")
	}

	toggled, err = service.ToggleComplete(ctx, "svc-toggle", task.ID)
	if err != nil {
		t.Fatalf("failed to toggle task back: %v", err)
	}
	if toggled.Completed {
		t.Error("expected task to be pending after second toggle")
	}
}

func TestTaskService_SoftDelete(t *testing.T) {
	service := newTaskService(t)
	ctx := context.Background()

	task, err := service.Create(ctx, "svc-delete", CreateTaskInput{Title: "Remove me"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if _, err := service.SoftDelete(ctx, "svc-delete", task.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	if _, err := service.Get(ctx, "svc-delete", task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected deleted task to be gone, got %v", err)
	}
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	service := NewTaskService(repository.NewTaskRepository(db, audit.Nop()))
	ctx := context.Background()

	task, err := service.Create(ctx, "svc-iso-bob", CreateTaskInput{Title: "Bob's secret"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if _, err := service.Get(ctx, "svc-iso-alice", task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected get to report not found, got %v", err)
	}

	title := "Stolen"
	if _, err := service.Update(ctx, "svc-iso-alice", task.ID, UpdateTaskInput{Title: &title}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected update to report not found, got %v", err)
	}
	if _, err := service.ToggleComplete(ctx, "svc-iso-alice", task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected toggle to report not found, got %v", err)
	}
	if _, err := service.SoftDelete(ctx, "svc-iso-alice", task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected delete to report not found, got %v", err)
	}

	// Bob still sees his task untouched.
	fetched, err := service.Get(ctx, "svc-iso-bob", task.ID)
	if err != nil {
		t.Fatalf("expected owner to still reach the task: %v", err)
	}
	if fetched.Title != "Bob's secret" {
		t.Errorf("expected title unchanged, got %s", fetched.Title)
	}
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	service := newTaskService(t)

	const concurrentCount = 50
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)

	for i := 0; i < concurrentCount; i++ {
		go func() {
			defer wg.Done()
			_, err := service.Create(context.Background(), "svc-concurrent", CreateTaskInput{Title: "Title"})
			if err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}

	tasks, err := service.List(context.Background(), "svc-concurrent", nil)
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != concurrentCount {
		t.Errorf("expected %d tasks, got %d", concurrentCount, len(tasks))
	}
}
