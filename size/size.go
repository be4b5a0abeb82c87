// Package size turns directional signals into concrete order quantities
package size

import (
	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/eventtypes/signal"
	"github.com/quantave/backtester/order"
	"github.com/shopspring/decimal"
)

// SizeSignal produces an order for the signalled asset and direction. A
// flat signal or a quantity that sizes to zero returns no order
func (s *Size) SizeSignal(sig *signal.Signal) (*order.Order, error) {
	if s.DefaultQuantity.IsZero() && s.TargetValue.IsZero() {
		return nil, ErrNoSizingGuidance
	}
	if sig.Direction == direction.Flat {
		return nil, nil
	}
	quantity := s.quantityAt(sig.Price)
	if quantity.IsZero() {
		return nil, nil
	}
	return order.New(sig.Time, sig.Asset, quantity.Mul(sig.Direction.Sign()))
}

func (s *Size) quantityAt(price decimal.Decimal) decimal.Decimal {
	if !s.DefaultQuantity.IsZero() {
		return s.DefaultQuantity
	}
	if price.IsZero() || price.IsNegative() {
		return decimal.Zero
	}
	return s.TargetValue.Div(price).Floor()
}
