package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RequestValidationError is raised when a request body fails its struct
// tags or the domain validators. The error handler maps it to a 400 with
// per-field messages.
type RequestValidationError struct {
	Fields map[string]string
}

func (e *RequestValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError wraps a ready-made field->message map (e.g. from the
// batch form validator).
func NewValidationError(fields map[string]string) *RequestValidationError {
	return &RequestValidationError{Fields: fields}
}

// ValidateRequest runs go-playground struct validation on a request DTO.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return &RequestValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "email":
		return "Must be a valid email address"
	default:
		return fmt.Sprintf("Failed validation: %s", fe.Tag())
	}
}
