package services

import (
	"errors"
	"fmt"
)

// Typed errors the controllers branch on. Validation failures wrap
// ErrValidation so callers can map them to 400 without string matching.
var (
	ErrValidation            = errors.New("validation failed")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrOverpayment           = errors.New("payment exceeds outstanding balance")
	ErrShiftAlreadyOpen      = errors.New("a shift is already open for this restaurant")
	ErrNoOpenShift           = errors.New("no open shift for this restaurant")
	ErrCannotCancelPaidOrder = errors.New("order has approved payments and cannot be cancelled")
	ErrDeductionFailed       = errors.New("stock deduction failed, order flagged for reconciliation")
	ErrOrderNotEditable      = errors.New("order no longer accepts item changes")
	ErrItemInPreparation     = errors.New("item already entered preparation")
	ErrBelowApprovedPayments = errors.New("order total cannot drop below approved payments")
)

// InvalidTransitionError reports a rejected state machine move verbatim.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

func invalidTransition[T ~string](from, to T) error {
	return &InvalidTransitionError{From: string(from), To: string(to)}
}
