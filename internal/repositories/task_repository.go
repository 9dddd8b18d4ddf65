package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"donext/internal/audit"
	apperrors "donext/internal/errors"
	model "donext/internal/models"
)

type TaskRepository struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewTaskRepository(db *gorm.DB, auditLog *audit.Logger) *TaskRepository {
	return &TaskRepository{db: db, audit: auditLog}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.RecurrencePattern == "" {
		task.RecurrencePattern = model.RecurrenceNone
	}

	return r.db.WithContext(ctx).Create(task).Error
}

// FindOwned loads a live task by id and verifies it belongs to userID.
// A task owned by someone else is reported as not found after recording
// a security event, so ids cannot be probed across users.
func (r *TaskRepository) FindOwned(ctx context.Context, userID string, id uint, action string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.UserID != userID {
		r.audit.CrossOwnerAccess(ctx, userID, "task", task.ID, task.UserID, action)
		return nil, apperrors.ErrTaskNotFound
	}

	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, userID string, completed *bool) ([]model.Task, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	tasks := make([]model.Task, 0)
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// SoftDelete stamps deleted_at so the task disappears from every query
// without losing the row. Deleting an already deleted task is a no-op.
func (r *TaskRepository) SoftDelete(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}

	task.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	task.UpdatedAt = now
	return nil
}
