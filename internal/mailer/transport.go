package mailer

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/config"
)

// NewTransport builds the configured email provider. Missing credentials or
// recipient yield an unconfigured Transport rather than an error so the
// endpoint can report the condition per request.
func NewTransport(cfg config.EmailConfig, logger zerolog.Logger) Transport {
	logger = logger.With().Str("component", "mailer").Str("provider", cfg.Provider).Logger()

	if cfg.To == "" {
		logger.Warn().Msg("EMAIL_TO is not configured")
		return Unconfigured(cfg.Provider, "EMAIL_TO environment variable is missing")
	}

	switch cfg.Provider {
	case config.ProviderLog:
		return Configured(cfg.Provider, NewLogSender(logger))
	case config.ProviderPostmark:
		if cfg.PostmarkServerToken == "" {
			logger.Warn().Msg("POSTMARK_SERVER_TOKEN is not configured")
			return Unconfigured(cfg.Provider, "POSTMARK_SERVER_TOKEN environment variable is missing")
		}
		return Configured(cfg.Provider, NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken))
	default:
		if cfg.ResendAPIKey == "" {
			logger.Warn().Msg("RESEND_API_KEY is not configured")
			return Unconfigured(config.ProviderResend, "RESEND_API_KEY environment variable is missing")
		}
		return Configured(config.ProviderResend, NewResendSender(cfg.ResendAPIKey))
	}
}
