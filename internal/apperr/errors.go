// Package apperr holds the error kinds every handler maps to a visible message.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("conflict")
	ErrTransientStore         = errors.New("store unavailable")
)

// Error pairs a kind with a user-facing message. Field is set for validation
// errors so the form can show the message next to the input.
type Error struct {
	Kind    error
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, msg string) error {
	return &Error{Kind: ErrValidation, Message: msg, Field: field}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func Unauthenticated(msg string) error {
	return &Error{Kind: ErrAuthenticationRequired, Message: msg}
}

func Denied(msg string) error {
	return &Error{Kind: ErrAuthorizationDenied, Message: msg}
}

// Store wraps a driver failure as a transient store error.
func Store(msg string, err error) error {
	return &Error{Kind: ErrTransientStore, Message: msg, Err: err}
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return "Authentication required"
	case errors.Is(err, ErrAuthorizationDenied):
		return "Access denied"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	}
	return "Something went wrong, please try again"
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
