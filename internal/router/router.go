// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spendly/api/internal/handler"
	"github.com/spendly/api/internal/middleware"
	"github.com/spendly/api/internal/server"
	"github.com/spendly/api/internal/service"
)

// New builds the Echo instance with the full middleware chain and all
// routes registered. Middleware order matters: request IDs and tracing
// must exist before the request logger and handlers run.
func New(s *server.Server, services *service.Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.NewMiddlewares(s)
	h := handler.NewHandlers(s, services)

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.CORS())
	e.Use(middleware.RequestID())
	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(mw.Auth.WithSession)
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.Global.RequestLogger())

	registerAPIRoutes(e, h, mw)
	registerSystemRoutes(e, h)

	return e
}

// registerAPIRoutes wires the expense record endpoints. Authentication
// is resolved per operation in the service layer, so the group carries
// no auth guard beyond the session middleware already installed
// globally.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := e.Group("/api")
	api.Use(mw.RateLimit.Limit(20, 40))

	records := api.Group("/records")
	records.POST("", handler.Handle(h.Records.Create, http.StatusCreated))
	records.GET("", handler.Handle(h.Records.List, http.StatusOK))
	records.DELETE("/:id", handler.Handle(h.Records.Delete, http.StatusOK))
	records.GET("/extremes", handler.Handle(h.Records.Extremes, http.StatusOK))
	records.GET("/summary", handler.Handle(h.Records.Summary, http.StatusOK))
}
