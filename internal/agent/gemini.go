package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	model "donext/internal/models"
)

const fallbackResponse = "I'm not sure how to help with that. You can ask me to add, list, complete, delete, or update tasks."

// GeminiRuntime drives the chat agent through Gemini's function calling
// API. One Run covers one user turn; the model may request several
// rounds of tool calls before settling on a text reply.
type GeminiRuntime struct {
	client        *genai.Client
	model         string
	maxToolRounds int
	logger        *slog.Logger
}

func NewGeminiRuntime(ctx context.Context, apiKey, modelName string, maxToolRounds int) (*GeminiRuntime, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if maxToolRounds <= 0 {
		maxToolRounds = 5
	}

	return &GeminiRuntime{
		client:        client,
		model:         modelName,
		maxToolRounds: maxToolRounds,
		logger:        slog.Default().With("component", "agent"),
	}, nil
}

func (g *GeminiRuntime) Close() error {
	return g.client.Close()
}

func (g *GeminiRuntime) Run(ctx context.Context, history []model.Message, tools *Toolset) (Result, error) {
	if len(history) == 0 {
		return Result{}, fmt.Errorf("empty conversation history")
	}

	gm := g.client.GenerativeModel(g.model)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	gm.Tools = geminiTools(tools.Definitions())

	cs := gm.StartChat()
	cs.History = geminiHistory(history[:len(history)-1])

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return Result{}, fmt.Errorf("send message: %w", err)
	}

	var calls []model.ToolCall
	for round := 0; round < g.maxToolRounds; round++ {
		pending := functionCalls(resp)
		if len(pending) == 0 {
			break
		}

		replies := make([]genai.Part, 0, len(pending))
		for _, fc := range pending {
			out := tools.Dispatch(ctx, fc.Name, fc.Args)
			g.logger.InfoContext(ctx, "tool call", "tool", fc.Name, "success", out["success"])
			calls = append(calls, model.ToolCall{Tool: fc.Name, Args: fc.Args, Result: out})
			replies = append(replies, genai.FunctionResponse{Name: fc.Name, Response: out})
		}

		resp, err = cs.SendMessage(ctx, replies...)
		if err != nil {
			return Result{}, fmt.Errorf("send tool results: %w", err)
		}
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		text = fallbackResponse
	}

	return Result{Response: text, ToolCalls: calls}, nil
}

func geminiTools(defs []Definition) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		properties := make(map[string]*genai.Schema, len(def.Parameters))
		for name, p := range def.Parameters {
			schema := &genai.Schema{Description: p.Description}
			switch p.Type {
			case "integer":
				schema.Type = genai.TypeInteger
			default:
				schema.Type = genai.TypeString
			}
			if len(p.Enum) > 0 {
				schema.Enum = p.Enum
			}
			properties[name] = schema
		}

		decls = append(decls, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   def.Required,
			},
		})
	}

	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiHistory(messages []model.Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == model.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	return resp.Candidates[0].FunctionCalls()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
