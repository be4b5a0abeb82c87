package statistics

import (
	"time"

	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

// EquityPoint is one snapshot of account equity on the curve
type EquityPoint struct {
	Timestamp    time.Time
	Equity       decimal.Decimal
	EquityReturn decimal.Decimal
	DrawnDown    decimal.Decimal
}

// Statistic accumulates the equity curve and transaction history of a run
// and derives summary performance figures from them
type Statistic struct {
	StrategyName string

	Equity             []EquityPoint
	High               EquityPoint
	Low                EquityPoint
	TransactionHistory []*transaction.Transaction
}
