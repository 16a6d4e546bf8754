package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/asdes/report-service/internal/api/http/handlers"
	"github.com/asdes/report-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	Dashboard      *handlers.DashboardHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gating happens here, at the
// boundary, so handlers never re-derive capability checks ad hoc.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/logout", cfg.Auth.Logout)

	protected.Get("/dashboard", cfg.Dashboard.Index)

	reports := protected.Group("/reports")
	reports.Get("", cfg.Reports.List)
	reports.Get("/create", auth.RequireWarga(), cfg.Reports.CreateForm)
	reports.Post("", auth.RequireWarga(), cfg.Reports.Create)
	reports.Get("/:id", cfg.Reports.Get)
	reports.Delete("/:id", cfg.Reports.Delete)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/reports", cfg.Admin.Reports)
	admin.Put("/reports/:id/status", cfg.Admin.UpdateStatus)
	admin.Get("/users", cfg.Admin.Users)
}
