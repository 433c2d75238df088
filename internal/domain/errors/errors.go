package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrMalformedID       = errors.New("malformed id")
	ErrInvalidInput      = errors.New("validation failed")
	ErrUnknownMenuItem   = errors.New("unknown menu item")
	ErrUnavailable       = errors.New("menu item unavailable")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ReferenceError reports a menu item id that does not resolve.
type ReferenceError struct {
	MenuItemID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Menu item with ID %s not found", e.MenuItemID)
}

func (e *ReferenceError) Unwrap() error { return ErrUnknownMenuItem }

// AvailabilityError reports an attempt to order an unavailable item.
type AvailabilityError struct {
	Name string
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("Menu item %s is not available", e.Name)
}

func (e *AvailabilityError) Unwrap() error { return ErrUnavailable }

// InvalidTransitionError carries the current and requested order status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot change status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
