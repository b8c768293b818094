// services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers map these to HTTP statuses;
// anything else coming out of this package is a plain failure the
// caller may retry.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnsettledBalance  = errors.New("unsettled balance")
)

// TransitionError reports a state-machine guard failure with enough
// detail for the caller to explain why the action is unavailable.
type TransitionError struct {
	From   string
	Event  string
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s from %s: %s", e.Event, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s from %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StockError reports a product whose requested quantity exceeds the
// available quantity in its stock source.
type StockError struct {
	ProductName string
	Source      string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d, available %d",
		e.ProductName, e.Source, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
