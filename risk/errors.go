package risk

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumber     = errors.New("invalid number")
	ErrMissingField      = errors.New("missing field")
	ErrInvalidDistance   = errors.New("stop-loss distance must be > 0")
	ErrInvalidConstraint = errors.New("value out of range")
	ErrNoCapitalDefined  = errors.New("no capital defined")
)

// FieldError ties one of the sentinel errors above to the request field
// that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}

func constraint(field, msg string) error {
	return &FieldError{Field: field, Err: fmt.Errorf("%w: %s", ErrInvalidConstraint, msg)}
}

// FieldOf returns the field named by err, or "" when err is not field scoped.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
