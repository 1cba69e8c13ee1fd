package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/unagency-contact/internal/dto"
	"github.com/noah-isme/unagency-contact/internal/middleware"
	"github.com/noah-isme/unagency-contact/internal/service"
	"github.com/noah-isme/unagency-contact/internal/utils"
	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

// ContactHandler handles contact submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires the send route. Guards run in front of POST only; every other
// method on the path is answered with 405.
func (h *ContactHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	post := append(append([]fiber.Handler{}, guards...), h.send)
	router.Post("/send", post...)
	router.All("/send", h.methodNotAllowed)
}

func (h *ContactHandler) send(c *fiber.Ctx) error {
	payload, err := dto.ParseContactRequest(c.Body())
	if err != nil {
		return utils.SendErrorDetails(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	response, err := h.service.Send(c.UserContext(), payload)
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(response)
	}

	var (
		validationErr *contactform.ValidationError
		configErr     *service.ConfigurationError
		deliveryErr   *service.DeliveryError
	)
	switch {
	case errors.As(err, &validationErr):
		return utils.SendErrorResponse(c, fiber.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: validationErr.Error(),
			Fields:  validationErr.Map(),
		})
	case errors.As(err, &configErr):
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Email service not configured", configErr.Reason)
	case errors.As(err, &deliveryErr):
		return utils.SendErrorDetails(c, fiber.StatusInternalServerError, "Failed to send email", deliveryErr.Detail())
	default:
		h.logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("contact send failed unexpectedly")
		return err
	}
}

func (h *ContactHandler) methodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "POST, OPTIONS")
	return utils.SendError(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}
