package position

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAssetMismatch is raised when a transaction for one asset is applied
	// to a position held in another
	ErrAssetMismatch = errors.New("transaction asset does not match position asset")
	// ErrNilTransaction is raised when a nil transaction is applied
	ErrNilTransaction = errors.New("nil transaction received")
	// ErrNegativePrice is raised when a mark price below zero is supplied
	ErrNegativePrice = errors.New("market price cannot be negative")
	// ErrTimeOrder is raised when a price update is earlier than the most
	// recent time seen by the position
	ErrTimeOrder = errors.New("update time is earlier than position current time")
)

// Position tracks the holding in a single asset: its signed quantity, the
// quantity-weighted average book cost per unit, the latest mark and the
// realised profit and loss accumulated by closing trades
type Position struct {
	Asset           string
	Quantity        decimal.Decimal
	BookCostPerUnit decimal.Decimal
	CurrentPrice    decimal.Decimal
	CurrentTime     time.Time
	RealisedPnL     decimal.Decimal
}

// Update describes an explicit partial adjustment of a position, applied
// field by field. Nil fields are left untouched
type Update struct {
	Quantity *decimal.Decimal
	Price    *decimal.Decimal
	Time     *time.Time
}
