package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/waitlisthq/waitlist-service/internal/api/http/handlers"
	"github.com/waitlisthq/waitlist-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	BasePath       string
	Health         *handlers.HealthHandler
	Admin          *handlers.AdminHandler
	Contact        *handlers.ContactHandler
	Waitlist       *handlers.WaitlistHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.Get("/", cfg.Health.Root)
	}

	admin := api.Group("/admin")
	admin.Post("/signup", cfg.Admin.Signup)
	admin.Post("/login", cfg.Admin.Login)
	admin.Patch("/update", cfg.AuthMiddleware.Handle, cfg.Admin.Update)
	admin.Delete("/delete", cfg.AuthMiddleware.Handle, cfg.Admin.Delete)

	// Listing is unauthenticated, matching the existing frontend contract.
	api.Post("/contact", cfg.Contact.Submit)
	api.Get("/contact", cfg.Contact.List)
	api.Post("/waitlist", cfg.Waitlist.Join)
	api.Get("/waitlist", cfg.Waitlist.List)
}
