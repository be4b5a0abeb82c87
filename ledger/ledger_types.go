package ledger

import (
	"errors"

	"github.com/quantave/backtester/position"
)

// CashAsset is the reserved key under which the ledger carries its cash
// balance as a unit-priced pseudo position
const CashAsset = "CASH"

var (
	// ErrReservedAsset is raised when a transaction or update targets the
	// cash pseudo position directly
	ErrReservedAsset = errors.New("asset name is reserved for the cash balance")
	// ErrPositionNotFound is raised when an update targets an asset the
	// ledger does not hold
	ErrPositionNotFound = errors.New("no position found for asset")
)

// Ledger is an insertion-ordered collection of positions keyed by asset.
// Positions fully closed by a transaction are evicted so that iteration
// only ever visits open holdings
type Ledger struct {
	order     []string
	positions map[string]*position.Position
}
