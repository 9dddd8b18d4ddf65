package audit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Event is one structured security event, written to the security log
// and handed to the publisher.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Details   map[string]any `json:"details"`
}

// RequestInfo carries client metadata from the HTTP layer down to the
// repositories that emit security events.
type RequestInfo struct {
	RequestID string
	IPAddress string
	UserAgent string
}

type requestInfoKey struct{}

func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestInfoFrom returns the request metadata stored in ctx, or the
// zero value when the call did not originate from an HTTP request.
func RequestInfoFrom(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info
}

// Logger writes security events to a rotating JSON log and forwards each
// one to the configured publisher.
type Logger struct {
	log *slog.Logger
	pub Publisher
}

// NewLogger opens the rotating security log at path, creating parent
// directories as needed. A nil publisher keeps events local.
func NewLogger(path string, pub Publisher) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 30,
		MaxAge:     30,
		Compress:   true,
	}
	return NewLoggerWithHandler(slog.NewJSONHandler(writer, nil), pub), nil
}

// NewLoggerWithHandler builds a Logger over an arbitrary slog handler.
// Tests use this to capture events in memory.
func NewLoggerWithHandler(h slog.Handler, pub Publisher) *Logger {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &Logger{log: slog.New(h), pub: pub}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewLoggerWithHandler(slog.NewJSONHandler(io.Discard, nil), nil)
}

// CrossOwnerAccess records a user touching a resource owned by someone
// else. Callers still return a plain not-found to the client.
func (l *Logger) CrossOwnerAccess(ctx context.Context, userID, resourceType string, resourceID uint, ownerID, action string) {
	l.emit(ctx, Event{
		EventType: "cross_user_access_attempt",
		UserID:    userID,
		Action:    action,
		Details: map[string]any{
			"resource_type":   resourceType,
			"resource_id":     resourceID,
			"actual_owner_id": ownerID,
		},
	})
}

// AuthFailure records a request rejected before authentication
// succeeded.
func (l *Logger) AuthFailure(ctx context.Context, reason, path string) {
	l.emit(ctx, Event{
		EventType: "unauthorized_access_attempt",
		UserID:    "anonymous",
		Action:    "request",
		Details: map[string]any{
			"path":   path,
			"reason": reason,
		},
	})
}

func (l *Logger) emit(ctx context.Context, ev Event) {
	info := RequestInfoFrom(ctx)
	ev.Timestamp = time.Now().UTC()
	ev.IPAddress = orUnknown(info.IPAddress)
	ev.UserAgent = orUnknown(info.UserAgent)
	if ev.Details == nil {
		ev.Details = map[string]any{}
	}

	l.log.WarnContext(ctx, ev.EventType,
		"user_id", ev.UserID,
		"action", ev.Action,
		"ip_address", ev.IPAddress,
		"user_agent", ev.UserAgent,
		"request_id", info.RequestID,
		"details", ev.Details,
	)

	if err := l.pub.Publish(ev); err != nil {
		l.log.ErrorContext(ctx, "security event publish failed", "error", err)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
