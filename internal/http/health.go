package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "donext/internal/data_models"
	apperrors "donext/internal/errors"
)

// Health is the liveness probe: the process is up.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

// Ready is the readiness probe: the database answers a trivial query.
func (h *Handler) Ready(c echo.Context) error {
	if err := h.db.WithContext(c.Request().Context()).Exec("SELECT 1").Error; err != nil {
		return apperrors.ErrNotReady
	}
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ready", Database: "connected"})
}
