package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"donext/internal/agent"
	"donext/internal/audit"
	apperrors "donext/internal/errors"
	model "donext/internal/models"
	repository "donext/internal/repositories"
)

// fakeRuntime lets each test script the agent's behaviour.
type fakeRuntime struct {
	run func(ctx context.Context, history []model.Message, tools *agent.Toolset) (agent.Result, error)
}

func (f *fakeRuntime) Run(ctx context.Context, history []model.Message, tools *agent.Toolset) (agent.Result, error) {
	return f.run(ctx, history, tools)
}

func newChatService(t *testing.T, runtime agent.Runtime, timeout time.Duration) (*ChatService, *repository.ConversationRepository) {
	db := setupTestDB(t)
	conversations := repository.NewConversationRepository(db, audit.Nop())
	tasks := repository.NewTaskRepository(db, audit.Nop())
	return NewChatService(conversations, tasks, runtime, timeout), conversations
}

func TestChatService_SendMessage_NewConversation(t *testing.T) {
	var seenHistory []model.Message
	var seenOwner string
	runtime := &fakeRuntime{run: func(_ context.Context, history []model.Message, tools *agent.Toolset) (agent.Result, error) {
		seenHistory = history
		seenOwner = tools.Owner()
		return agent.Result{Response: "Sure, adding that now."}, nil
	}}

	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	result, err := service.SendMessage(ctx, "chat-new-owner", nil, "add milk to my list")
	if err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	if result.ConversationID == 0 {
		t.Error("expected a conversation to be created")
	}
	if result.Response != "Sure, adding that now." {
		t.Errorf("expected agent response, got %q", result.Response)
	}
	if result.ToolCalls != nil {
		t.Errorf("expected no tool calls, got %v", result.ToolCalls)
	}

	if seenOwner != "chat-new-owner" {
		t.Errorf("expected toolset bound to sender, got %q", seenOwner)
	}
	if len(seenHistory) != 1 {
		t.Fatalf("expected runtime to see 1 message, got %d", len(seenHistory))
	}
	if seenHistory[0].Role != model.RoleUser || seenHistory[0].Content != "add milk to my list" {
		t.Errorf("expected the user turn last, got %+v", seenHistory[0])
	}

	messages, err := conversations.History(ctx, result.ConversationID, 0)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected user and assistant messages persisted, got %d", len(messages))
	}
	if messages[0].Role != model.RoleUser || messages[1].Role != model.RoleAssistant {
		t.Errorf("expected user then assistant, got %s then %s", messages[0].Role, messages[1].Role)
	}
}

func TestChatService_SendMessage_ExistingConversation(t *testing.T) {
	runtime := &fakeRuntime{run: func(_ context.Context, history []model.Message, _ *agent.Toolset) (agent.Result, error) {
		return agent.Result{Response: "Noted."}, nil
	}}

	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	conv, err := conversations.Create(ctx, "chat-existing-owner")
	if err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	result, err := service.SendMessage(ctx, "chat-existing-owner", &conv.ID, "first")
	if err != nil {
		t.Fatalf("failed to send first message: %v", err)
	}
	if result.ConversationID != conv.ID {
		t.Errorf("expected conversation %d, got %d", conv.ID, result.ConversationID)
	}

	var seen int
	runtime.run = func(_ context.Context, history []model.Message, _ *agent.Toolset) (agent.Result, error) {
		seen = len(history)
		return agent.Result{Response: "Again."}, nil
	}

	if _, err := service.SendMessage(ctx, "chat-existing-owner", &conv.ID, "second"); err != nil {
		t.Fatalf("failed to send second message: %v", err)
	}
	if seen != 3 {
		t.Errorf("expected runtime to see prior turns plus the new one, got %d", seen)
	}
}

func TestChatService_SendMessage_Validation(t *testing.T) {
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		t.Fatal("runtime must not run for invalid messages")
		return agent.Result{}, nil
	}}
	service, _ := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	for _, message := range []string{"", "   \n\t "} {
		_, err := service.SendMessage(ctx, "chat-validation", nil, message)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("expected validation error for %q, got %v", message, err)
		}
		if ex := apperrors.From(err); ex.Message != "Message cannot be empty." {
			t.Errorf("expected empty-message text, got %q", ex.Message)
		}
	}

	_, err := service.SendMessage(ctx, "chat-validation", nil, strings.Repeat("a", 2001))
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for long message, got %v", err)
	}
	if ex := apperrors.From(err); ex.Message != "Message must be 2000 characters or less." {
		t.Errorf("expected length text, got %q", ex.Message)
	}
}

func TestChatService_SendMessage_ConversationNotFound(t *testing.T) {
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		return agent.Result{Response: "never"}, nil
	}}
	service, _ := newChatService(t, runtime, time.Second)

	missing := uint(999999)
	_, err := service.SendMessage(context.Background(), "chat-missing", &missing, "hello")
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestChatService_SendMessage_CrossOwnerConversation(t *testing.T) {
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		return agent.Result{Response: "never"}, nil
	}}
	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	conv, err := conversations.Create(ctx, "chat-cross-bob")
	if err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	_, err = service.SendMessage(ctx, "chat-cross-alice", &conv.ID, "hello")
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		t.Errorf("expected foreign conversation to be not found, got %v", err)
	}
}

func TestChatService_SendMessage_RuntimeFailure(t *testing.T) {
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		return agent.Result{}, errors.New("model exploded")
	}}
	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	conv, err := conversations.Create(ctx, "chat-fail-owner")
	if err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	_, err = service.SendMessage(ctx, "chat-fail-owner", &conv.ID, "do something")
	if !errors.Is(err, apperrors.ErrAIServiceUnavailable) {
		t.Errorf("expected ErrAIServiceUnavailable, got %v", err)
	}

	// The user message survives the failed turn so the user can retry.
	messages, err := conversations.History(ctx, conv.ID, 0)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected the user message to be persisted, got %d messages", len(messages))
	}
	if messages[0].Role != model.RoleUser || messages[0].Content != "do something" {
		t.Errorf("expected persisted user turn, got %+v", messages[0])
	}
}

func TestChatService_SendMessage_Timeout(t *testing.T) {
	runtime := &fakeRuntime{run: func(ctx context.Context, _ []model.Message, _ *agent.Toolset) (agent.Result, error) {
		<-ctx.Done()
		return agent.Result{}, ctx.Err()
	}}
	service, _ := newChatService(t, runtime, 10*time.Millisecond)

	_, err := service.SendMessage(context.Background(), "chat-timeout", nil, "slow question")
	if !errors.Is(err, apperrors.ErrAIServiceUnavailable) {
		t.Fatalf("expected ErrAIServiceUnavailable, got %v", err)
	}
	if ex := apperrors.From(err); ex.Message != "AI service timed out. Please try again." {
		t.Errorf("expected timeout message, got %q", ex.Message)
	}
}

func TestChatService_SendMessage_ToolCallsPersisted(t *testing.T) {
	calls := []model.ToolCall{{
		Tool:   "add_task",
		Args:   map[string]any{"title": "milk"},
		Result: map[string]any{"success": true},
	}}
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		return agent.Result{Response: "Added milk.", ToolCalls: calls}, nil
	}}
	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	result, err := service.SendMessage(ctx, "chat-tools-owner", nil, "add milk")
	if err != nil {
		t.Fatalf("failed to send message: %v", err)
	}
	if len(result.ToolCalls) != 1 || result.ToolCalls[0].Tool != "add_task" {
		t.Errorf("expected the tool call in the result, got %+v", result.ToolCalls)
	}

	messages, err := conversations.History(ctx, result.ConversationID, 0)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1].ToolCallsJSON == nil {
		t.Error("expected tool calls stored on the assistant message")
	}
}

func TestChatService_History(t *testing.T) {
	runtime := &fakeRuntime{run: func(context.Context, []model.Message, *agent.Toolset) (agent.Result, error) {
		return agent.Result{Response: "ok"}, nil
	}}
	service, conversations := newChatService(t, runtime, time.Second)
	ctx := context.Background()

	result, err := service.SendMessage(ctx, "chat-history-owner", nil, "hello there")
	if err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	messages, err := service.History(ctx, "chat-history-owner", result.ConversationID, 0)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(messages))
	}

	_, err = service.History(ctx, "chat-history-stranger", result.ConversationID, 0)
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		t.Errorf("expected foreign history to be not found, got %v", err)
	}

	_ = conversations
}
