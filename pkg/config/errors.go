package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadError describes a configuration that could not be read or validated.
type LoadError struct {
	// File is the path of the configuration file (empty for in-memory data).
	File string

	// Field is the offending key, dotted (e.g. "addressing.ip").
	Field string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil && !errors.Is(e.Cause, ErrInvalidConfig) {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

func invalid(field, format string, args ...any) *LoadError {
	return &LoadError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Cause:   ErrInvalidConfig,
	}
}
