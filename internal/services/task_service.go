package services

import (
	"context"
	"time"
	"unicode/utf8"

	apperrors "donext/internal/errors"
	model "donext/internal/models"
	repository "donext/internal/repositories"
)

// CreateTaskInput carries the user-supplied fields for a new task. The
// owner is passed separately, straight from the verified session, and
// is never part of the payload.
type CreateTaskInput struct {
	Title             string
	Description       string
	Priority          model.TaskPriority
	DueDate           *time.Time
	Tags              []string
	RecurrencePattern model.RecurrencePattern
}

// UpdateTaskInput holds optional field changes; nil means keep the
// current value.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Completed         *bool
	Priority          *model.TaskPriority
	DueDate           *time.Time
	Tags              *[]string
	RecurrencePattern *model.RecurrencePattern
}

func (in UpdateTaskInput) empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Completed == nil &&
		in.Priority == nil &&
		in.DueDate == nil &&
		in.Tags == nil &&
		in.RecurrencePattern == nil
}

type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, owner string, in CreateTaskInput) (*model.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, apperrors.Validation("Priority must be one of: low, medium, high.", nil)
	}
	if in.RecurrencePattern != "" && !in.RecurrencePattern.Valid() {
		return nil, apperrors.Validation("Recurrence pattern must be one of: none, daily, weekly, monthly.", nil)
	}

	task := &model.Task{
		UserID:            owner,
		Title:             in.Title,
		Description:       in.Description,
		Priority:          in.Priority,
		DueDate:           in.DueDate,
		Tags:              in.Tags,
		RecurrencePattern: in.RecurrencePattern,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) List(ctx context.Context, owner string, completed *bool) ([]model.Task, error) {
	return s.repo.List(ctx, owner, completed)
}

func (s *TaskService) Get(ctx context.Context, owner string, id uint) (*model.Task, error) {
	return s.repo.FindOwned(ctx, owner, id, "read")
}

func (s *TaskService) Update(ctx context.Context, owner string, id uint, in UpdateTaskInput) (*model.Task, error) {
	if in.empty() {
		return nil, apperrors.Validation("At least one field must be provided.", nil)
	}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return nil, apperrors.Validation("Priority must be one of: low, medium, high.", nil)
	}
	if in.RecurrencePattern != nil && !in.RecurrencePattern.Valid() {
		return nil, apperrors.Validation("Recurrence pattern must be one of: none, daily, weekly, monthly.", nil)
	}

	task, err := s.repo.FindOwned(ctx, owner, id, "update")
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Tags != nil {
		task.Tags = *in.Tags
	}
	if in.RecurrencePattern != nil {
		task.RecurrencePattern = *in.RecurrencePattern
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ToggleComplete(ctx context.Context, owner string, id uint) (*model.Task, error) {
	task, err := s.repo.FindOwned(ctx, owner, id, "toggle")
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) SoftDelete(ctx context.Context, owner string, id uint) (*model.Task, error) {
	task, err := s.repo.FindOwned(ctx, owner, id, "delete")
	if err != nil {
		return nil, err
	}

	if err := s.repo.SoftDelete(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.Validation("Title cannot be empty.", nil)
	}
	if utf8.RuneCountInString(title) > 200 {
		return apperrors.Validation("Title must be 200 characters or less.", nil)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > 1000 {
		return apperrors.Validation("Description must be 1000 characters or less.", nil)
	}
	return nil
}
