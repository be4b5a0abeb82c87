// Package bar is the market data event consumed by the strategy layer
package bar

import (
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/shopspring/decimal"
)

// Bar is one daily OHLCV print for an asset, timestamped at the session
// close it represents
type Bar struct {
	event.Base
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ClosePrice returns the closing price of the bar
func (b *Bar) ClosePrice() decimal.Decimal {
	return b.Close
}
