// Package common defines the sentinel errors shared across the server
// layers. Callers match them with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// service specific errors
	ErrorForbidden    = errors.New("forbidden")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInternal     = errors.New("internal error")

	// governor denial, never conflated with business errors
	ErrorRateExceeded = errors.New("rate exceeded")

	ErrInvalidToken = errors.New("invalid token")
)

// OpError wraps a persistence-layer fault with the name of the failing
// operation. The operation name is safe to show to callers; the wrapped
// error is for logs only.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapOp tags err with the operation name. Returns nil if err is nil.
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
