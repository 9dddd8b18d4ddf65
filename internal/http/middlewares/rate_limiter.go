package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "donext/internal/errors"
	"donext/internal/ratelimit"
)

// RateLimiter enforces a fixed-window per-client limit for one route
// group. Requests are keyed by scope plus client IP; a limiter backend
// failure lets the request through rather than taking the API down.
func RateLimiter(limiter ratelimit.Limiter, scope string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := scope + ":" + c.RealIP()

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				slog.WarnContext(c.Request().Context(), "rate limiter unavailable", "error", err, "scope", scope)
				return next(c)
			}

			if !allowed {
				seconds := int(retryAfter / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return apperrors.RateLimited(seconds)
			}

			return next(c)
		}
	}
}
