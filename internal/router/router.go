package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/unagency-contact/internal/config"
	"github.com/noah-isme/unagency-contact/internal/handler"
	"github.com/noah-isme/unagency-contact/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler *handler.ContactHandler
	// RateLimiter guards POST /api/send; nil leaves the route unthrottled.
	RateLimiter     fiber.Handler
	EmailConfigured func() bool
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.EmailConfigured))

	if deps.ContactHandler != nil {
		var guards []fiber.Handler
		if deps.RateLimiter != nil {
			guards = append(guards, deps.RateLimiter)
		}
		deps.ContactHandler.Register(api, guards...)
	}

	app.Get("/metrics", observability.MetricsHandler())
}
