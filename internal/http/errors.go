package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "donext/internal/data_models"
	apperrors "donext/internal/errors"
)

// ErrorHandler renders every error as the uniform envelope. Application
// exceptions keep their code and status, stray echo errors get a
// generic code, and anything else becomes a logged 500.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   dto.ErrorResponse
		)

		var ex *apperrors.Exception
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ex):
			status = ex.StatusCode
			body = dto.NewErrorResponse(ex.Code, ex.Message, ex.Details)
		case errors.As(err, &he):
			status = he.Code
			body = dto.NewErrorResponse("HTTP_ERROR", fmt.Sprintf("%v", he.Message), nil)
		default:
			status = http.StatusInternalServerError
			logger.ErrorContext(c.Request().Context(), "unhandled error",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)
			body = dto.NewErrorResponse(
				"INTERNAL_SERVER_ERROR",
				"An unexpected error occurred. Please try again later.",
				nil,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "error response write failed", "error", writeErr)
		}
	}
}
