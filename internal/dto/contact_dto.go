package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

// ErrInvalidBody is returned when the request body is not a JSON object of strings.
var ErrInvalidBody = errors.New("request body must be a valid JSON object")

const contactRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "message": {"type": "string"}
  }
}`

var contactSchema = jsonschema.MustCompileString("contact_request.json", contactRequestSchema)

// ContactRequest defines the expected payload for the send endpoint.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submission converts the payload into the shared form model.
func (r ContactRequest) Submission() contactform.Submission {
	return contactform.Submission{Name: r.Name, Email: r.Email, Message: r.Message}
}

// ParseContactRequest decodes a raw body. The body must be a single JSON object
// whose name, email and message members, when present, are strings.
func ParseContactRequest(body []byte) (ContactRequest, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var document interface{}
	if err := decoder.Decode(&document); err != nil {
		return ContactRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if decoder.More() {
		return ContactRequest{}, fmt.Errorf("%w: trailing data after JSON object", ErrInvalidBody)
	}
	if err := contactSchema.Validate(document); err != nil {
		return ContactRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	var req ContactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ContactRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return req, nil
}

// ContactResponse is returned when the email was accepted by the provider.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Type    string            `json:"type,omitempty"`
}
