package service

import (
	"errors"
	"strings"
)

// Domain errors surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
)

// FieldError describes one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field error for a rejected input, so
// callers can redisplay the form with per-field messages.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a field error and returns the receiver for chaining.
func (e *ValidationError) add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// ok reports whether no field errors were collected.
func (e *ValidationError) ok() bool { return len(e.Fields) == 0 }

// fieldError builds a single-field ValidationError.
func fieldError(field, message string) *ValidationError {
	return (&ValidationError{}).add(field, message)
}
