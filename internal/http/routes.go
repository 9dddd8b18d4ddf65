package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"donext/internal/audit"
	middleware "donext/internal/http/middlewares"
	"donext/internal/ratelimit"
	repository "donext/internal/repositories"
)

// RouterConfig carries everything Register needs besides the handler
// itself.
type RouterConfig struct {
	Sessions           *repository.SessionRepository
	Audit              *audit.Logger
	Limiter            ratelimit.Limiter
	ListPerMinute      int
	MutationsPerMinute int
	ChatPerMinute      int
	HistoryPerMinute   int
	AllowedOrigins     []string
	Logger             *slog.Logger
}

func Register(e *echo.Echo, h *Handler, cfg RouterConfig) {
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)
	e.Validator = NewValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.Gzip())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestContext(cfg.Logger))

	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)

	auth := middleware.BearerAuth(cfg.Sessions, cfg.Audit)
	listLimit := middleware.RateLimiter(cfg.Limiter, "tasks_list", cfg.ListPerMinute, time.Minute)
	writeLimit := middleware.RateLimiter(cfg.Limiter, "tasks_write", cfg.MutationsPerMinute, time.Minute)

	tasks := e.Group("/api/tasks", auth)
	tasks.GET("", h.ListTasks, listLimit)
	tasks.POST("", h.CreateTask, writeLimit)
	tasks.GET("/:id", h.GetTask, listLimit)
	tasks.PUT("/:id", h.UpdateTask, writeLimit)
	tasks.DELETE("/:id", h.DeleteTask, writeLimit)
	tasks.PATCH("/:id/complete", h.ToggleTaskCompletion, writeLimit)

	chat := e.Group("/api", auth)
	chat.POST("/chat",
		h.SendChatMessage,
		middleware.RateLimiter(cfg.Limiter, "chat_send", cfg.ChatPerMinute, time.Minute))
	chat.GET("/conversations/:id/messages",
		h.ConversationMessages,
		middleware.RateLimiter(cfg.Limiter, "chat_history", cfg.HistoryPerMinute, time.Minute))
}
