package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORS stamps the allow headers on every response and answers preflight
// requests with an empty 200 before any body is read.
func CORS(allowOrigin string) fiber.Handler {
	allowOrigin = corsOrigin(allowOrigin)

	return func(c *fiber.Ctx) error {
		SetCORSHeaders(c, allowOrigin)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}

		return c.Next()
	}
}

// SetCORSHeaders writes the allow headers onto the response. It is shared with
// the error handler, which also answers requests rejected before any
// middleware runs.
func SetCORSHeaders(c *fiber.Ctx, allowOrigin string) {
	allowOrigin = corsOrigin(allowOrigin)
	c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
	if allowOrigin != "*" {
		c.Vary(fiber.HeaderOrigin)
	}
}

func corsOrigin(allowOrigin string) string {
	allowOrigin = strings.TrimSpace(allowOrigin)
	if allowOrigin == "" {
		return "*"
	}
	return allowOrigin
}
