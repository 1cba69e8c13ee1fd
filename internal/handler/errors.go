package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/dto"
	"github.com/noah-isme/unagency-contact/internal/middleware"
)

// fallbackBody is written when the error envelope itself cannot be encoded.
var fallbackBody = []byte(`{"error":"Internal server error","details":"failed to encode error response"}`)

// encodeJSON is swapped in tests to exercise the fallback body.
var encodeJSON = json.Marshal

// ErrorHandler renders every error that escapes a handler, panics included,
// as a JSON envelope. Errors raised before the middleware chain, such as an
// oversized body, get the CORS headers here.
func ErrorHandler(logger zerolog.Logger, allowOrigin string) fiber.ErrorHandler {
	logger = logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		payload := dto.ErrorResponse{Error: "Internal server error", Details: err.Error(), Type: errorType(err)}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			payload = dto.ErrorResponse{Error: fiberErrorText(fiberErr)}
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("correlation_id", middleware.GetCorrelationID(c)).
				Str("path", c.Path()).
				Str("type", payload.Type).
				Msg("unhandled error")
		}

		body, encodeErr := encodeJSON(payload)
		if encodeErr != nil {
			logger.Error().Err(encodeErr).Msg("failed to encode error response")
			status = fiber.StatusInternalServerError
			body = fallbackBody
		}

		middleware.SetCORSHeaders(c, allowOrigin)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).Send(body)
	}
}

func fiberErrorText(err *fiber.Error) string {
	switch err.Code {
	case fiber.StatusRequestEntityTooLarge:
		return "Request body too large"
	case fiber.StatusNotFound:
		return "Not found"
	case fiber.StatusMethodNotAllowed:
		return "Method not allowed"
	default:
		return err.Message
	}
}

func errorType(err error) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "errorString" {
		return "Error"
	}
	return name
}
