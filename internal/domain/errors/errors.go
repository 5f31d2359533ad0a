package errors

import (
	"errors"
	"fmt"

	"github.com/posdesk/pos-engine/internal/pkg/money"
)

var (
	ErrInvalidItem       = errors.New("item has no sellable identity")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrCashSessionClosed = errors.New("cash session is not open")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientCash  = errors.New("cash received is less than the amount due")

	ErrUnauthorized = errors.New("credential rejected by service")
)

// InsufficientCashError carries the shortfall for display. It matches
// ErrInsufficientCash under errors.Is.
type InsufficientCashError struct {
	Shortfall money.Money
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("insufficient cash: %s short", e.Shortfall.Format())
}

func (e *InsufficientCashError) Is(target error) bool {
	return target == ErrInsufficientCash
}

// ServiceError is a non-2xx response with structured detail from the remote
// service. Detail is surfaced to the user verbatim when present.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("service returned status %d", e.StatusCode)
}

// TransportError is a network or decoding failure: the request may never
// have reached the service, so local state is never assumed mutated.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable text to show for any engine error.
func Message(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Error()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "could not reach the server"
	}
	return err.Error()
}
