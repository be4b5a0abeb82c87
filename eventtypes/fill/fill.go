// Package fill is the dispatch loop event reporting an executed order
package fill

import (
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/quantave/backtester/transaction"
)

// Fill reports the transaction an executed order settled into
type Fill struct {
	event.Base
	PortfolioID string
	Transaction *transaction.Transaction
}
