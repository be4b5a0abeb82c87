// Package signal is the trade intent event produced by the strategy layer
package signal

import (
	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/shopspring/decimal"
)

// Signal expresses a directional trade intent in an asset at the latest
// known price. Sizing into a concrete order quantity is the sizer's job
type Signal struct {
	event.Base
	Direction direction.Direction
	Price     decimal.Decimal
}
