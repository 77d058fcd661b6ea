package service

import (
	"errors"
	"fmt"
)

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrCodeTaken          = errors.New("code already used by another bookmark")
)

// ValidationError reports input that passed the schema layer but breaks a
// business rule, such as a tag name that is blank once trimmed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
