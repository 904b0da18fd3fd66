package router

import (
	"github.com/labstack/echo/v4"

	"github.com/paulloo/relivator/internal/handler"
)

// registerSystemRoutes mounts endpoints that are not business logic.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health endpoint for load balancers and uptime monitors.
	e.GET("/status", h.Health.CheckHealth)
}
