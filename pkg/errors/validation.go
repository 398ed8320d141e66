package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports the fields of an input that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is a single failed rule on a single field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// NewValidationError creates a ValidationError from field failures.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", f.Field, f.Rule))
	}
	return strings.Join(msgs, "; ")
}
