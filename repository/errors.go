package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced post, group or user does not
// exist. Listing an existing-but-empty scope is not a not-found condition.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a write because of an empty or invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthorizationError rejects a write attempted by a non-author or by an
// anonymous caller on an action that requires identity.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
