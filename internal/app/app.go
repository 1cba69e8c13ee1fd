// Package app assembles the contact API from configuration so the long-running
// server and the serverless entry point share one wiring.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/config"
	"github.com/noah-isme/unagency-contact/internal/handler"
	"github.com/noah-isme/unagency-contact/internal/mailer"
	"github.com/noah-isme/unagency-contact/internal/middleware"
	"github.com/noah-isme/unagency-contact/internal/router"
	"github.com/noah-isme/unagency-contact/internal/service"
	"github.com/noah-isme/unagency-contact/internal/storage"
	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

const contactSite = "The unAgency website"

// Options carries the inputs for New. Transport and LimiterStorage are
// optional overrides; when nil they are built from Config.
type Options struct {
	Config         config.Config
	Logger         zerolog.Logger
	Transport      *mailer.Transport
	LimiterStorage fiber.Storage
}

// Server is the assembled Fiber application and the resources it owns.
type Server struct {
	App     *fiber.App
	closers []func() error
}

// New builds the Fiber application. An unreachable Redis is logged and the
// limiter falls back to process memory.
func New(ctx context.Context, opts Options) (*Server, error) {
	cfg := opts.Config
	logger := opts.Logger
	server := &Server{}

	transport := mailer.NewTransport(cfg.Email, logger)
	if opts.Transport != nil {
		transport = *opts.Transport
	}

	limiterStore := opts.LimiterStorage
	if limiterStore == nil && cfg.RedisURL != "" {
		client, err := storage.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter falling back to in-memory storage")
		} else {
			store := storage.NewRedisStorage(client, "")
			limiterStore = store
			server.closers = append(server.closers, store.Close)
		}
	}

	composer := mailer.Composer{From: cfg.Email.From, To: cfg.Email.To, Site: contactSite}
	contactService := service.NewContactService(contactform.NewValidator(), transport, composer, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: handler.ErrorHandler(logger, cfg.CORSAllowOrigin),
	})

	middleware.Register(app, middleware.Config{
		Logger:      &logger,
		AllowOrigin: cfg.CORSAllowOrigin,
		AccessLog:   cfg.IsDevelopment(),
	})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler: contactHandler,
		RateLimiter: middleware.RateLimit(middleware.RateLimitConfig{
			Identifier: "contact",
			Max:        cfg.RateLimitMax,
			Window:     cfg.RateLimitWindow,
			Storage:    limiterStore,
			Logger:     logger,
		}),
		EmailConfigured: contactService.EmailConfigured,
	})

	logger.Info().
		Str("provider", transport.Provider()).
		Bool("email_configured", transport.Ready()).
		Bool("redis_limiter", limiterStore != nil).
		Msg("contact api initialised")

	server.App = app
	return server, nil
}

// Close releases resources acquired by New.
func (s *Server) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
