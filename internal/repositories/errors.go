package repositories

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record exists for a user
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned for a blank user id
	ErrInvalidID = errors.New("invalid user id")
)

// RepositoryError wraps a store failure with the operation and record it hit
type RepositoryError struct {
	Op       string
	Resource string // entity or table name
	ID       string
	Err      error
}

func (e *RepositoryError) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	if e.ID == "" {
		return fmt.Sprintf("%s: %s: %v", e.Resource, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Resource, e.ID, e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, resource, id string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Resource: resource, ID: id, Err: err}
}

// NotFoundError reports a missing record
func NotFoundError(resource, id string) *RepositoryError {
	return NewRepositoryError("get", resource, id, ErrNotFound)
}

// IsNotFound reports whether err, or anything it wraps, is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidID reports whether err was caused by a blank user id
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// CheckUserID rejects blank user ids before they reach a store
func CheckUserID(op, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return NewRepositoryError(op, "user", userID, ErrInvalidID)
	}
	return nil
}
