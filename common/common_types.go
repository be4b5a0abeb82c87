package common

import "errors"

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it
	// shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrDateEndBeforeStart is raised at construction when a date range is
	// reversed
	ErrDateEndBeforeStart = errors.New("end date occurs before start date")
	// ErrTimeOrder is raised when an operation is applied with a timestamp
	// earlier than the entity's current time
	ErrTimeOrder = errors.New("timestamp is earlier than current time")
	// ErrNegativeAmount is raised when a fund amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrInsufficientFunds is raised when a fund movement exceeds the
	// available cash balance
	ErrInsufficientFunds = errors.New("insufficient funds")
)
