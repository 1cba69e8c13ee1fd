// Package handler is the serverless entry point for POST /api/send.
package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/app"
	"github.com/noah-isme/unagency-contact/internal/config"
	"github.com/noah-isme/unagency-contact/internal/logging"
)

var (
	initOnce sync.Once
	serve    http.HandlerFunc
)

func setup() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		serve = unavailable
		return
	}

	rootLogger, err := logging.New(logging.Options{Level: cfg.LogLevel, Service: cfg.AppName})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to configure logger, using bootstrap logger")
	} else {
		logger = rootLogger.Logger
	}

	server, err := app.New(context.Background(), app.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build application")
		serve = unavailable
		return
	}
	serve = limitBody(cfg.BodyLimit, cfg.CORSAllowOrigin, adaptor.FiberApp(server.App))
}

var (
	tooLargeBody   = []byte(`{"error":"Request body too large"}`)
	unreadableBody = []byte(`{"error":"Invalid request body"}`)
)

// limitBody enforces the body limit that fasthttp applies under cmd/api; the
// adaptor bypasses it. The body is buffered so next sees a complete request.
func limitBody(limit int, allowOrigin string, next http.HandlerFunc) http.HandlerFunc {
	allowOrigin = strings.TrimSpace(allowOrigin)
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if limit <= 0 || r.Body == nil {
			next(w, r)
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(limit)))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, allowOrigin, http.StatusRequestEntityTooLarge, tooLargeBody)
			} else {
				writeError(w, allowOrigin, http.StatusBadRequest, unreadableBody)
			}
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))
		next(w, r)
	}
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"Internal server error","details":"service failed to initialise"}`))
}

// Handler serves one request. The Fiber app is built on first use and reused
// by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	serve(w, r)
}

func writeError(w http.ResponseWriter, allowOrigin string, status int, body []byte) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	if allowOrigin != "*" {
		h.Add("Vary", "Origin")
	}
	h.Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
