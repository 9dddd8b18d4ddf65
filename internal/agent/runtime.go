package agent

import (
	"context"
	"errors"

	model "donext/internal/models"
)

// Result is the outcome of one agent turn.
type Result struct {
	Response  string
	ToolCalls []model.ToolCall
}

// Runtime runs one agent turn over the conversation history, invoking
// tools through the supplied toolset. The last history entry is the
// user message being answered.
type Runtime interface {
	Run(ctx context.Context, history []model.Message, tools *Toolset) (Result, error)
}

// ErrRuntimeDisabled reports that no LLM backend was configured.
var ErrRuntimeDisabled = errors.New("agent runtime is not configured")

// Disabled stands in for a real runtime when no API key is set, so the
// rest of the server still works and chat reports service-unavailable.
type Disabled struct{}

func (Disabled) Run(context.Context, []model.Message, *Toolset) (Result, error) {
	return Result{}, ErrRuntimeDisabled
}
