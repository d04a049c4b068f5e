package service

import (
	"database/sql"
	"errors"
	"fmt"

	"taskboard/internal/ordering"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("not found")
	ErrReaderNil        = errors.New("reader is nil")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrInvalidInput     = errors.New("invalid input")
)

// NotFoundError names the missing resource. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// notFound translates sql.ErrNoRows into a NotFoundError for resource.
func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

// orderError classifies a failed reorder: malformed id lists are input errors,
// ids matching no row are not-found.
func orderError(resource string, err error) error {
	if errors.Is(err, ordering.ErrEmptyID) || errors.Is(err, ordering.ErrDuplicateID) {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return notFound(resource, err)
}

func invalidPlacement(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPlacement}, args...)...)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
