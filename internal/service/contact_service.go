package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/unagency-contact/internal/dto"
	"github.com/noah-isme/unagency-contact/internal/logging"
	"github.com/noah-isme/unagency-contact/internal/mailer"
	"github.com/noah-isme/unagency-contact/internal/observability"
	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

var (
	// ErrEmailNotConfigured indicates no email provider could be built.
	ErrEmailNotConfigured = errors.New("email service not configured")
	// ErrDeliveryFailed indicates the provider refused or failed the send.
	ErrDeliveryFailed = errors.New("failed to send email")
)

// ConfigurationError explains why the email provider is unavailable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return ErrEmailNotConfigured.Error() + ": " + e.Reason
}

// Is matches ErrEmailNotConfigured.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrEmailNotConfigured
}

// DeliveryError wraps a failed provider call.
type DeliveryError struct {
	Provider string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s via %s: %v", ErrDeliveryFailed, e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is matches ErrDeliveryFailed.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailed
}

// Detail returns the provider's own explanation of the failure.
func (e *DeliveryError) Detail() string {
	var providerErr *mailer.ProviderError
	if errors.As(e.Err, &providerErr) {
		return providerErr.Err.Error()
	}
	return e.Err.Error()
}

// ContactService exposes the contact send workflow.
type ContactService interface {
	Send(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
	EmailConfigured() bool
}

type contactService struct {
	validator *contactform.Validator
	transport mailer.Transport
	composer  mailer.Composer
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewContactService constructs the send workflow around an already built transport.
func NewContactService(validator *contactform.Validator, transport mailer.Transport, composer mailer.Composer, logger zerolog.Logger) ContactService {
	return &contactService{
		validator: validator,
		transport: transport,
		composer:  composer,
		logger:    logger.With().Str("component", "contact_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/unagency-contact/internal/service/contact"),
	}
}

func (s *contactService) EmailConfigured() bool {
	return s.transport.Ready()
}

// Send re-validates the submission, renders the notification and hands it to
// the provider. Validation always runs before the configuration check so a
// bad payload is reported as such even on a misconfigured deployment.
func (s *contactService) Send(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	ctx, span := s.tracer.Start(ctx, "contact.send")
	defer span.End()
	logger := s.logger.With().Str("correlation_id", observability.CorrelationID(ctx)).Logger()

	submission, verr := s.validator.Check(req.Submission())
	if verr != nil {
		span.SetStatus(codes.Error, "validation failed")
		observability.ContactSubmissions().WithLabelValues(observability.OutcomeInvalid).Inc()
		return dto.ContactResponse{}, verr
	}

	if !s.transport.Ready() {
		span.SetStatus(codes.Error, "email not configured")
		observability.ContactSubmissions().WithLabelValues(observability.OutcomeUnconfigured).Inc()
		logger.Error().Str("provider", s.transport.Provider()).Str("reason", s.transport.Reason()).Msg("email service not configured")
		return dto.ContactResponse{}, &ConfigurationError{Reason: s.transport.Reason()}
	}

	msg, err := s.composer.Compose(submission)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compose failed")
		observability.ContactSubmissions().WithLabelValues(observability.OutcomeFailed).Inc()
		return dto.ContactResponse{}, fmt.Errorf("compose contact email: %w", err)
	}

	provider := s.transport.Provider()
	span.SetAttributes(attribute.String("email.provider", provider))

	start := time.Now()
	id, err := s.transport.Sender().Send(ctx, msg)
	elapsed := time.Since(start)
	if err != nil {
		observability.ProviderLatency().WithLabelValues(provider, "error").Observe(elapsed.Seconds())
		observability.ContactSubmissions().WithLabelValues(observability.OutcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		logger.Error().Err(err).Str("provider", provider).Str("email", logging.MaskEmail(submission.Email)).Msg("contact email delivery failed")
		return dto.ContactResponse{}, &DeliveryError{Provider: provider, Err: err}
	}

	observability.ProviderLatency().WithLabelValues(provider, "ok").Observe(elapsed.Seconds())
	observability.ContactSubmissions().WithLabelValues(observability.OutcomeSent).Inc()
	span.SetAttributes(attribute.String("email.message_id", id))
	span.SetStatus(codes.Ok, "delivered")

	logger.Info().
		Str("provider", provider).
		Str("message_id", id).
		Str("email", logging.MaskEmail(submission.Email)).
		Dur("provider_latency", elapsed).
		Msg("contact email sent")

	return dto.ContactResponse{Success: true, Message: "Email sent successfully", ID: id}, nil
}
