package router

import (
	"github.com/deppfellow/go-catalog/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the catalog API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Used by load balancers and uptime monitors.
	r.GET("/status", h.Health.CheckHealth)
}
