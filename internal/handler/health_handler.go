package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/unagency-contact/internal/config"
	"github.com/noah-isme/unagency-contact/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Service         string    `json:"service"`
	Environment     string    `json:"environment"`
	EmailConfigured bool      `json:"email_configured"`
}

// HealthCheck returns a handler that reports application health information.
// emailConfigured is reported as-is; an unconfigured provider does not fail the check.
func HealthCheck(cfg config.Config, emailConfigured func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}
		if emailConfigured != nil {
			payload.EmailConfigured = emailConfigured()
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
