package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for blank or out-of-set user input. Nothing is persisted.
	ErrValidation = errors.New("validation error")
	// ErrInsufficientData is returned when the classifier has no labeled rows to train on.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrCorruptData is returned when a backing file exists but does not parse.
	ErrCorruptData = errors.New("corrupt data")
	// ErrPersistence is returned when a backing file cannot be written.
	ErrPersistence = errors.New("persistence failure")
)

// FieldError reports which input field failed validation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
