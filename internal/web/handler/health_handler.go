package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
)

type HealthHandler struct {
	probe ports.BackendProbe
}

func NewHealthHandler(probe ports.BackendProbe) *HealthHandler {
	return &HealthHandler{probe: probe}
}

// Liveness answers as long as the process runs.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness additionally requires the case API to be reachable; without it
// every screen beyond login would fail anyway.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.probe.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"backend": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
