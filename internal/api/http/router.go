package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/lcibils/monitor-neuratek/internal/api/http/handlers"
	"github.com/lcibils/monitor-neuratek/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api/v1")
	api.Get("/dashboard", cfg.Dashboard.Dashboard)
	api.Get("/customers", cfg.Dashboard.Customers)
	api.Post("/refresh", cfg.Dashboard.Refresh)
}
