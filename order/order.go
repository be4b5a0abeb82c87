// Package order defines the order request produced by the strategy and
// sizing layers and consumed exactly once by the simulated broker
package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/quantave/backtester/direction"
	"github.com/shopspring/decimal"
)

// Order is a request to trade a signed quantity of an asset. Limit, stop and
// commission fields are optional; a zero value leaves the broker's own
// pricing and fee model in charge
type Order struct {
	ID         string
	CreatedAt  time.Time
	Asset      string
	Quantity   decimal.Decimal
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
	Commission decimal.Decimal
}

// New assigns a fresh identifier and returns an order for the signed
// quantity of the supplied asset
func New(dt time.Time, asset string, quantity decimal.Decimal) (*Order, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Order{
		ID:        u.String(),
		CreatedAt: dt,
		Asset:     asset,
		Quantity:  quantity,
	}, nil
}

// Direction derives the side of the order from its quantity sign
func (o *Order) Direction() direction.Direction {
	return direction.FromQuantity(o.Quantity)
}
