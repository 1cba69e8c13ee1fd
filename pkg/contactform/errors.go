package contactform

import "strings"

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   Field  `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a submission, in form order.
type ValidationError struct {
	Fields []FieldError
}

// Error joins the field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, string(fe.Field)+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Map returns the field-keyed messages.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, fe := range e.Fields {
		out[string(fe.Field)] = fe.Message
	}
	return out
}

// Has reports whether the field was rejected.
func (e *ValidationError) Has(field Field) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}
