// Package exchange models the trading calendar of the simulated venue
package exchange

import (
	"time"

	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/common"
)

// IsOpenAt always reports true
func (AlwaysOpen) IsOpenAt(_ time.Time) bool {
	return true
}

// IsOpenAt reports whether the venue is within its continuous trading
// session: a weekday, between the market open and close inclusive, so that
// executions scheduled at the closing auction still take place
func (Equity) IsOpenAt(dt time.Time) bool {
	if !common.IsBusinessDay(dt) {
		return false
	}
	return !dt.Before(clock.MarketOpenTime(dt)) && !dt.After(clock.MarketCloseTime(dt))
}
