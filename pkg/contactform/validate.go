package contactform

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// personNamePattern accepts Latin letters (accented included), spaces,
	// hyphens and apostrophes.
	personNamePattern   = regexp.MustCompile(`^[\p{Latin} '’\-]+$`)
	contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var fieldMessages = map[Field]string{
	FieldName:    "Name must be between 2 and 100 characters and contain only letters, spaces, hyphens or apostrophes",
	FieldEmail:   "Please enter a valid email address",
	FieldMessage: "Message must be between 10 and 2000 characters",
}

// FieldText returns the canonical English error text for a field.
func FieldText(field Field) string {
	return fieldMessages[field]
}

// Validator checks submissions against the contact form rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator with the contact form rules registered.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contactEmailPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate checks every field of an already normalized submission and reports
// all failures at once. It returns nil when the submission is valid.
func (v *Validator) Validate(s Submission) *ValidationError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Struct only fails this way for invalid input types, which a
		// Submission value never is.
		return &ValidationError{Fields: []FieldError{{Field: FieldName, Rule: "invalid", Message: err.Error()}}}
	}

	failures := make(map[Field]FieldError, len(validationErrors))
	for _, fe := range validationErrors {
		field := Field(fe.Field())
		if _, seen := failures[field]; seen {
			continue
		}
		failures[field] = FieldError{Field: field, Rule: fe.Tag(), Message: FieldText(field)}
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(failures))}
	for _, field := range Fields {
		if failure, ok := failures[field]; ok {
			out.Fields = append(out.Fields, failure)
		}
	}
	return out
}

// Check normalizes the submission, validates it and returns the normalized value.
func (v *Validator) Check(s Submission) (Submission, *ValidationError) {
	normalized := Normalize(s)
	return normalized, v.Validate(normalized)
}
