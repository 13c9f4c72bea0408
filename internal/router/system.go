package router

import (
	"github.com/labstack/echo/v4"
	"github.com/spendly/api/internal/handler"
)

// registerSystemRoutes wires the endpoints that are not business
// logic: health status, API docs, and the static assets the docs page
// loads.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)

	// Serves openapi.json and any future docs assets.
	e.Static("/static", "static")

	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
