package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"donext/internal/audit"
	apperrors "donext/internal/errors"
	model "donext/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type ConversationRepository struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewConversationRepository(db *gorm.DB, auditLog *audit.Logger) *ConversationRepository {
	return &ConversationRepository{db: db, audit: auditLog}
}

func (r *ConversationRepository) Create(ctx context.Context, userID string) (*model.Conversation, error) {
	now := time.Now().UTC()
	conv := &model.Conversation{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// FindOwned mirrors the task lookup: foreign conversations are reported
// as not found after recording a security event.
func (r *ConversationRepository) FindOwned(ctx context.Context, userID string, id uint, action string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, err
	}

	if conv.UserID != userID {
		r.audit.CrossOwnerAccess(ctx, userID, "conversation", conv.ID, conv.UserID, action)
		return nil, apperrors.ErrConversationNotFound
	}

	return &conv, nil
}

// AppendMessage stores one chat turn. Tool calls, when present, ride
// along as a JSON column next to the assistant text.
func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID uint, userID, role, content string, toolCalls []model.ToolCall) (*model.Message, error) {
	msg := &model.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}

	if len(toolCalls) > 0 {
		data, err := json.Marshal(toolCalls)
		if err != nil {
			return nil, err
		}
		encoded := string(data)
		msg.ToolCallsJSON = &encoded
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns the conversation's oldest messages first, capped at
// limit. Non-positive limits fall back to the default window.
func (r *ConversationRepository) History(ctx context.Context, conversationID uint, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// Touch bumps updated_at so conversations sort by recent activity.
func (r *ConversationRepository) Touch(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Model(conv).
		Update("updated_at", time.Now().UTC()).Error
}
