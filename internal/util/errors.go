// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrInvalidCredentials   = errors.New("username or password is incorrect")
	ErrDuplicateEntry       = errors.New("duplicate entry") // For cases like registering an existing username
)

// EntityKind names the kind of entity a lookup failed to resolve.
type EntityKind string

const (
	EntityUser    EntityKind = "user"
	EntityAccount EntityKind = "account"
	EntityStock   EntityKind = "stock"
	EntityHolding EntityKind = "holding"
)

// NotFoundError is a structured not-found error: it carries the kind of the
// missing entity so a caller can tell a missing account from a missing stock
// quote, both of which surface as a 404.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Unwrap makes errors.Is(err, ErrNotFound) hold for every structured variant.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound builds a structured not-found error for the given entity.
func NewNotFound(kind EntityKind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsError reports whether err matches the target sentinel.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
