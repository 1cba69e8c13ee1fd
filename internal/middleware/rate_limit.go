package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/dto"
	"github.com/noah-isme/unagency-contact/internal/observability"
)

// RateLimitConfig controls the per-client limiter on the send endpoint.
type RateLimitConfig struct {
	Identifier string
	Max        int
	Window     time.Duration
	// Storage holds the counters; nil keeps them in process memory.
	Storage fiber.Storage
	Logger  zerolog.Logger
}

// RateLimit creates a per-IP rate limiter. A non-positive Max disables it.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Identifier == "" {
		cfg.Identifier = "contact"
	}
	logger := cfg.Logger.With().Str("component", "rate_limit").Logger()

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return cfg.Identifier + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			observability.ContactSubmissions().WithLabelValues(observability.OutcomeRateLimited).Inc()
			logger.Warn().
				Str("correlation_id", GetCorrelationID(c)).
				Str("ip", c.IP()).
				Msg("rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Error: "Too many requests"})
		},
	})
}
