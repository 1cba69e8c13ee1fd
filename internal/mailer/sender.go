// Package mailer delivers contact submissions through a transactional email provider.
package mailer

import (
	"context"
	"errors"
)

// ErrProviderRejected marks failures reported by the email provider itself.
var ErrProviderRejected = errors.New("email provider rejected the message")

// ProviderError carries the provider's own explanation for a failed send.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches ErrProviderRejected.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderRejected
}

// Message is an outbound email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender is the interface for email providers. Send returns the provider's
// message identifier when one is available.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Transport is the outcome of building the email provider: either a usable
// Sender or the reason none could be built.
type Transport struct {
	sender  Sender
	name    string
	missing string
}

// Configured wraps a ready sender.
func Configured(name string, sender Sender) Transport {
	return Transport{sender: sender, name: name}
}

// Unconfigured records why no sender is available.
func Unconfigured(name, reason string) Transport {
	return Transport{name: name, missing: reason}
}

// Ready reports whether a sender is available.
func (t Transport) Ready() bool {
	return t.sender != nil
}

// Provider returns the provider identifier.
func (t Transport) Provider() string {
	return t.name
}

// Reason returns the operator-facing explanation for an unconfigured transport.
func (t Transport) Reason() string {
	return t.missing
}

// Sender returns the configured sender, or nil.
func (t Transport) Sender() Sender {
	return t.sender
}
