package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"donext/internal/agent"
	apperrors "donext/internal/errors"
	model "donext/internal/models"
	repository "donext/internal/repositories"
)

const maxMessageLength = 2000

// ChatResult is what the chat endpoint returns to the caller.
type ChatResult struct {
	ConversationID uint
	Response       string
	ToolCalls      []model.ToolCall
}

// ChatService orchestrates one chat turn: resolve the conversation,
// persist the user message, run the agent with owner-bound tools, then
// persist the assistant reply.
type ChatService struct {
	conversations *repository.ConversationRepository
	tasks         *repository.TaskRepository
	runtime       agent.Runtime
	timeout       time.Duration
	logger        *slog.Logger
}

func NewChatService(
	conversations *repository.ConversationRepository,
	tasks *repository.TaskRepository,
	runtime agent.Runtime,
	timeout time.Duration,
) *ChatService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatService{
		conversations: conversations,
		tasks:         tasks,
		runtime:       runtime,
		timeout:       timeout,
		logger:        slog.Default().With("component", "chat"),
	}
}

func (s *ChatService) SendMessage(ctx context.Context, userID string, conversationID *uint, message string) (*ChatResult, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, apperrors.Validation("Message cannot be empty.", nil)
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, apperrors.Validation("Message must be 2000 characters or less.", nil)
	}

	var conv *model.Conversation
	var err error
	if conversationID != nil {
		conv, err = s.conversations.FindOwned(ctx, userID, *conversationID, "chat")
	} else {
		conv, err = s.conversations.Create(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	// The user message is persisted before the agent runs so it survives
	// an agent failure and the user can retry.
	if _, err := s.conversations.AppendMessage(ctx, conv.ID, userID, model.RoleUser, text, nil); err != nil {
		return nil, err
	}

	history, err := s.conversations.History(ctx, conv.ID, 0)
	if err != nil {
		return nil, err
	}

	toolset := agent.NewToolset(userID, s.tasks)

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.runtime.Run(runCtx, history, toolset)
	if err != nil {
		s.logger.ErrorContext(ctx, "agent run failed", "error", err, "conversation_id", conv.ID)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.AIUnavailable("AI service timed out. Please try again.")
		}
		return nil, apperrors.ErrAIServiceUnavailable
	}

	if _, err := s.conversations.AppendMessage(ctx, conv.ID, userID, model.RoleAssistant, result.Response, result.ToolCalls); err != nil {
		return nil, err
	}
	if err := s.conversations.Touch(ctx, conv); err != nil {
		return nil, err
	}

	return &ChatResult{
		ConversationID: conv.ID,
		Response:       result.Response,
		ToolCalls:      result.ToolCalls,
	}, nil
}

// History returns a conversation's messages oldest first, after
// checking ownership.
func (s *ChatService) History(ctx context.Context, userID string, conversationID uint, limit int) ([]model.Message, error) {
	if _, err := s.conversations.FindOwned(ctx, userID, conversationID, "read"); err != nil {
		return nil, err
	}
	return s.conversations.History(ctx, conversationID, limit)
}
