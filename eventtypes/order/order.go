// Package order is the dispatch loop event wrapping a sized order request
// bound for the simulated broker
package order

import (
	"github.com/quantave/backtester/eventtypes/event"
	btorder "github.com/quantave/backtester/order"
)

// Order routes a sized order request to the broker queue of a portfolio
type Order struct {
	event.Base
	PortfolioID string
	Order       *btorder.Order
}
