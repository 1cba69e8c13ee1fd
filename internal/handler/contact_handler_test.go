package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unagency-contact/internal/dto"
	"github.com/noah-isme/unagency-contact/internal/mailer"
	"github.com/noah-isme/unagency-contact/internal/service"
	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

type mockContactService struct {
	lastPayload dto.ContactRequest
	calls       int
	response    dto.ContactResponse
	err         error
}

func (m *mockContactService) Send(_ context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	m.calls++
	m.lastPayload = req
	if m.err != nil {
		return dto.ContactResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockContactService) EmailConfigured() bool { return true }

const testOrigin = "https://unagency.example"

func newTestApp(svc service.ContactService) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, testOrigin)})
	NewContactHandler(svc, logger).Register(app.Group("/api"))
	app.Get("/panic", func(c *fiber.Ctx) error {
		return errors.New("cannot read properties of undefined")
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload dto.ErrorResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestContactHandlerSendSuccess(t *testing.T) {
	svc := &mockContactService{response: dto.ContactResponse{Success: true, Message: "Email sent successfully", ID: "email-1"}}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/send", strings.NewReader(`{"name":"Ana","email":"ana@example.com","message":"Hello there!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ContactResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "email-1", body.ID)
	assert.Equal(t, "Ana", svc.lastPayload.Name)
}

func TestContactHandlerInvalidBody(t *testing.T) {
	svc := &mockContactService{}
	app := newTestApp(svc)

	resp, payload := post(t, app, `{"name":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", payload.Error)
	assert.NotEmpty(t, payload.Details)
	assert.Zero(t, svc.calls)
}

func TestContactHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		details string
	}{
		{
			name:    "validation",
			err:     &contactform.ValidationError{Fields: []contactform.FieldError{{Field: contactform.FieldEmail, Rule: "contactemail", Message: "Please enter a valid email address"}}},
			status:  fiber.StatusBadRequest,
			message: "Validation failed",
			details: "email: Please enter a valid email address",
		},
		{
			name:    "not configured",
			err:     &service.ConfigurationError{Reason: "RESEND_API_KEY environment variable is missing"},
			status:  fiber.StatusInternalServerError,
			message: "Email service not configured",
			details: "RESEND_API_KEY environment variable is missing",
		},
		{
			name:    "wrapped not configured",
			err:     fmt.Errorf("send: %w", &service.ConfigurationError{Reason: "EMAIL_TO environment variable is missing"}),
			status:  fiber.StatusInternalServerError,
			message: "Email service not configured",
			details: "EMAIL_TO environment variable is missing",
		},
		{
			name:    "delivery",
			err:     &service.DeliveryError{Provider: "resend", Err: &mailer.ProviderError{Provider: "resend", Err: errors.New("domain not verified")}},
			status:  fiber.StatusInternalServerError,
			message: "Failed to send email",
			details: "domain not verified",
		},
		{
			name:    "unexpected",
			err:     fmt.Errorf("compose contact email: %w", errors.New("template exploded")),
			status:  fiber.StatusInternalServerError,
			message: "Internal server error",
			details: "compose contact email: template exploded",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&mockContactService{err: tc.err})
			resp, payload := post(t, app, `{"name":"Ana","email":"ana@example.com","message":"Hello there!"}`)
			require.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, payload.Error)
			assert.Equal(t, tc.details, payload.Details)
		})
	}
}

func TestContactHandlerValidationFields(t *testing.T) {
	verr := &contactform.ValidationError{Fields: []contactform.FieldError{
		{Field: contactform.FieldName, Rule: "min", Message: contactform.FieldText(contactform.FieldName)},
		{Field: contactform.FieldMessage, Rule: "min", Message: contactform.FieldText(contactform.FieldMessage)},
	}}
	app := newTestApp(&mockContactService{err: verr})

	_, payload := post(t, app, `{"name":"A","email":"ana@example.com","message":"Hi"}`)
	assert.Equal(t, verr.Map(), payload.Fields)
}

func TestContactHandlerMethodNotAllowed(t *testing.T) {
	app := newTestApp(&mockContactService{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp, err := app.Test(httptest.NewRequest(method, "/api/send", nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, string(body))
	}
}

func TestErrorHandlerUncaughtError(t *testing.T) {
	app := newTestApp(&mockContactService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get("Content-Type"))

	var payload dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Internal server error", payload.Error)
	assert.Equal(t, "cannot read properties of undefined", payload.Details)
	assert.Equal(t, "Error", payload.Type)
	assert.Equal(t, testOrigin, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := newTestApp(&mockContactService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Not found"}`, string(body))
	assert.Equal(t, testOrigin, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "POST, OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
	assert.Equal(t, fiber.HeaderOrigin, resp.Header.Get(fiber.HeaderVary))
}

func TestErrorHandlerFallsBackWhenEncodingFails(t *testing.T) {
	original := encodeJSON
	encodeJSON = func(interface{}) ([]byte, error) { return nil, errors.New("encoder broken") }
	t.Cleanup(func() { encodeJSON = original })

	app := newTestApp(&mockContactService{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, string(fallbackBody), string(body))
}
