package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "donext/internal/data_models"
	apperrors "donext/internal/errors"
	middleware "donext/internal/http/middlewares"
	model "donext/internal/models"
)

func (h *Handler) SendChatMessage(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.chatService.SendMessage(
		c.Request().Context(),
		middleware.UserID(c),
		req.ConversationID,
		req.Message,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ChatResponse{
		ConversationID: result.ConversationID,
		Response:       result.Response,
		ToolCalls:      result.ToolCalls,
	})
}

func (h *Handler) ConversationMessages(c echo.Context) error {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || conversationID == 0 {
		return apperrors.Validation("Conversation id must be a positive integer.", nil)
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return apperrors.Validation("limit must be between 1 and 100.", nil)
		}
		limit = parsed
	}

	messages, err := h.chatService.History(
		c.Request().Context(),
		middleware.UserID(c),
		uint(conversationID),
		limit,
	)
	if err != nil {
		return err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, dto.MessageResponse{
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			ToolCalls: decodeToolCalls(c.Request().Context(), msg.ToolCallsJSON),
			CreatedAt: msg.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, out)
}

// decodeToolCalls tolerates corrupt rows: a bad JSON column is logged
// and rendered as null rather than failing the whole history.
func decodeToolCalls(ctx context.Context, raw *string) []model.ToolCall {
	if raw == nil {
		return nil
	}

	var calls []model.ToolCall
	if err := json.Unmarshal([]byte(*raw), &calls); err != nil {
		slog.WarnContext(ctx, "undecodable tool_calls column", "error", err)
		return nil
	}
	return calls
}
