package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"donext/internal/audit"
	apperrors "donext/internal/errors"
	repository "donext/internal/repositories"
)

const userIDKey = "user_id"

// BearerAuth verifies the Authorization bearer token against the
// session table and stores the resolved user id on the context. The
// user id never comes from the request payload.
func BearerAuth(sessions *repository.SessionRepository, auditLog *audit.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				auditLog.AuthFailure(ctx, "missing_token", c.Request().URL.Path)
				return apperrors.ErrAuthentication
			}

			userID, err := sessions.Verify(ctx, token)
			if err != nil {
				if ex := apperrors.From(err); ex != nil {
					auditLog.AuthFailure(ctx, strings.ToLower(ex.Code), c.Request().URL.Path)
				}
				return err
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id stored by BearerAuth, or the
// empty string on unauthenticated routes.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
