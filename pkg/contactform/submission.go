// Package contactform holds the contact form rules shared by the send endpoint
// and its clients: the submission shape, input sanitization and field validation.
package contactform

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field names a contact form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists every form input in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Length bounds, counted in characters after sanitization.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	EmailMaxLength   = 254
	MessageMinLength = 10
	MessageMaxLength = 2000
)

// Submission is a single contact form entry. It is never persisted.
type Submission struct {
	Name    string `json:"name" validate:"required,min=2,max=100,personname"`
	Email   string `json:"email" validate:"required,max=254,contactemail"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Value returns the value held for the given field.
func (s Submission) Value(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	default:
		return ""
	}
}

// With returns a copy of the submission with the field set to value.
func (s Submission) With(field Field, value string) Submission {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldMessage:
		s.Message = value
	}
	return s
}

// Normalize sanitizes every field. Names are also folded to NFC so decomposed
// accents count as a single letter.
func Normalize(s Submission) Submission {
	return Submission{
		Name:    norm.NFC.String(Sanitize(s.Name)),
		Email:   strings.TrimSpace(Sanitize(s.Email)),
		Message: Sanitize(s.Message),
	}
}
