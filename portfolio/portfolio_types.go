package portfolio

import (
	"time"

	"github.com/quantave/backtester/ledger"
	"github.com/shopspring/decimal"
)

// EventKind labels an entry in the portfolio cash history
type EventKind string

const (
	// Subscription credits external funds into the portfolio
	Subscription EventKind = "subscription"
	// Withdrawal debits funds out of the portfolio
	Withdrawal EventKind = "withdrawal"
	// AssetTransaction settles an executed order against cash
	AssetTransaction EventKind = "asset_transaction"
	// Dividend credits a cash dividend on a held position
	Dividend EventKind = "dividend"
)

// Event is one append-only entry in the portfolio cash history. Debit,
// credit and the running balance are rounded to two decimal places at
// the time of recording
type Event struct {
	Time        time.Time
	Kind        EventKind
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// Holding is a point in time snapshot of one open position
type Holding struct {
	Quantity      decimal.Decimal
	MarketValue   decimal.Decimal
	UnrealisedPnL decimal.Decimal
	RealisedPnL   decimal.Decimal
	TotalPnL      decimal.Decimal
	BookCost      decimal.Decimal
	CurrentPrice  decimal.Decimal
}

// Portfolio couples a position ledger with a cash history. All fund and
// asset movements pass through it so that the history remains a complete
// record of every cash movement since creation
type Portfolio struct {
	ID          string
	Name        string
	Currency    string
	CreatedAt   time.Time
	CurrentTime time.Time

	ledger  *ledger.Ledger
	history []Event
}
