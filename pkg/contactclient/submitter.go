package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

// Receipt describes an accepted submission.
type Receipt struct {
	// ID is the provider message identifier, when the server returns one.
	ID string
	// URL is set by submitters that hand off to another program.
	URL string
}

// Submitter delivers a validated submission.
type Submitter interface {
	Submit(ctx context.Context, s contactform.Submission) (Receipt, error)
}

// SubmitError reports a failed delivery. Message holds the server's error text
// when the response carried one.
type SubmitError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("submit failed (%d): %s", e.Status, e.Message)
	case e.Message != "":
		return "submit failed: " + e.Message
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("submit failed (%d): %v", e.Status, e.Err)
	case e.Err != nil:
		return "submit failed: " + e.Err.Error()
	default:
		return fmt.Sprintf("submit failed with status %d", e.Status)
	}
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

const maxResponseBytes = 1 << 20

// HTTPSubmitter posts submissions as JSON to the send endpoint.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPSubmitter returns a submitter with a bounded client timeout.
func NewHTTPSubmitter(endpoint string) *HTTPSubmitter {
	return &HTTPSubmitter{Endpoint: endpoint, Client: &http.Client{Timeout: 30 * time.Second}}
}

type sendResponse struct {
	Success bool   `json:"success"`
	OK      bool   `json:"ok"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// Submit succeeds only for a 2xx JSON response reporting success or ok.
func (h *HTTPSubmitter) Submit(ctx context.Context, s contactform.Submission) (Receipt, error) {
	payload, err := json.Marshal(map[string]string{
		"name":    s.Name,
		"email":   s.Email,
		"message": s.Message,
	})
	if err != nil {
		return Receipt{}, &SubmitError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, &SubmitError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Receipt{}, &SubmitError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Err: err}
	}

	var body sendResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: body.Error, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if !body.Success && !body.OK {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: body.Error, Err: errors.New("response did not report success")}
	}

	return Receipt{ID: body.ID}, nil
}

// MailtoSubmitter hands the submission to the user's mail program.
type MailtoSubmitter struct {
	Recipient string
	// Open launches the mailto URL, for example with the platform opener.
	Open func(ctx context.Context, mailtoURL string) error
}

func (m *MailtoSubmitter) Submit(ctx context.Context, s contactform.Submission) (Receipt, error) {
	if strings.TrimSpace(m.Recipient) == "" {
		return Receipt{}, &SubmitError{Err: errors.New("mailto recipient is not configured")}
	}
	link := BuildMailtoURL(m.Recipient, s)
	if m.Open != nil {
		if err := m.Open(ctx, link); err != nil {
			return Receipt{URL: link}, &SubmitError{Err: err}
		}
	}
	return Receipt{URL: link}, nil
}

// BuildMailtoURL renders a mailto link with a percent-encoded subject and body.
func BuildMailtoURL(recipient string, s contactform.Submission) string {
	subject := "New Inquiry from " + s.Name
	body := "Name: " + s.Name + "\nEmail: " + s.Email + "\nMessage: " + s.Message
	return "mailto:" + strings.TrimSpace(recipient) + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
