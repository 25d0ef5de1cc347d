package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWager     = errors.New("invalid wager")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrBalanceOverflow  = errors.New("balance is not a finite number")
)

// InvalidWagerError is returned when a wager is non-numeric, not positive, or
// larger than the current balance.
type InvalidWagerError struct {
	Wager   float64
	Balance float64
	Reason  string
}

func (e *InvalidWagerError) Error() string {
	return fmt.Sprintf("invalid wager %.2f (balance %.2f): %s", e.Wager, e.Balance, e.Reason)
}

func (e *InvalidWagerError) Is(target error) bool {
	return target == ErrInvalidWager
}

type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
