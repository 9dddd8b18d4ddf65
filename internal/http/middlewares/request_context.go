package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"donext/internal/audit"
	apperrors "donext/internal/errors"
)

// RequestContext tags every request with an id, stashes client metadata
// for the audit trail, and logs one line per request.
func RequestContext(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			info := audit.RequestInfo{
				RequestID: requestID,
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}
			ctx := audit.WithRequestInfo(c.Request().Context(), info)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = apperrors.StatusCode(err)
				}
			}

			logger.InfoContext(ctx, "request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", info.IPAddress,
				"request_id", requestID,
			)

			return err
		}
	}
}
