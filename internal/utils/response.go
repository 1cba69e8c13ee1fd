package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/unagency-contact/internal/dto"
)

// APIResponse describes the common structure for informational endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error envelope carrying only the error text.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return SendErrorResponse(c, status, dto.ErrorResponse{Error: message})
}

// SendErrorDetails sends an error envelope with an explanatory detail string.
func SendErrorDetails(c *fiber.Ctx, status int, message, details string) error {
	return SendErrorResponse(c, status, dto.ErrorResponse{Error: message, Details: details})
}

// SendErrorResponse writes a fully populated error envelope.
func SendErrorResponse(c *fiber.Ctx, status int, payload dto.ErrorResponse) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(payload)
}
