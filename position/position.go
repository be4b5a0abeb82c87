// Package position maintains per-asset weighted-average cost accounting
// under arbitrary sequences of same- and opposite-direction transactions
package position

import (
	"fmt"
	"time"

	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// New returns an empty position in the supplied asset. The first transaction
// applied establishes the direction and book cost
func New(asset string) *Position {
	return &Position{Asset: asset}
}

// FromTransaction opens a position directly from a fill
func FromTransaction(t *transaction.Transaction) (*Position, error) {
	if t == nil {
		return nil, ErrNilTransaction
	}
	p := New(t.Asset)
	if err := p.Transact(t); err != nil {
		return nil, err
	}
	return p, nil
}

// Direction derives the side of the position from its quantity sign
func (p *Position) Direction() direction.Direction {
	return direction.FromQuantity(p.Quantity)
}

// Transact applies a fill to the position, blending book cost for
// same-direction trades, realising P&L against book cost for closing
// trades and resetting the cost basis when the direction flips
func (p *Position) Transact(t *transaction.Transaction) error {
	if t == nil {
		return ErrNilTransaction
	}
	if p.Asset != t.Asset {
		return fmt.Errorf("%w: position %s transaction %s", ErrAssetMismatch, p.Asset, t.Asset)
	}
	if t.Quantity.IsZero() {
		return nil
	}

	totalQuantity := p.Quantity.Add(t.Quantity)
	switch {
	case totalQuantity.IsZero():
		// Fully closed; realise against the existing book cost
		p.realise(p.Quantity.Abs(), t.Price)
		p.RealisedPnL = p.RealisedPnL.Sub(t.Commission)
		p.BookCostPerUnit = decimal.Zero
	case p.Quantity.IsZero():
		// Opening trade establishes the cost basis
		p.BookCostPerUnit = t.Price
	case p.Direction() == t.Direction():
		// Increasing exposure; quantity-weighted average of the book cost
		positionCost := p.BookCostPerUnit.Mul(p.Quantity)
		transactionCost := t.Price.Mul(t.Quantity)
		p.BookCostPerUnit = positionCost.Add(transactionCost).Div(totalQuantity)
	case t.Quantity.Abs().GreaterThan(p.Quantity.Abs()):
		// Direction flip: the old side closes in full at its book cost and
		// the residual opens a new position at the transaction price
		p.realise(p.Quantity.Abs(), t.Price)
		p.BookCostPerUnit = t.Price
	default:
		// Partial close at the existing book cost per unit
		p.realise(t.Quantity.Abs(), t.Price)
		p.RealisedPnL = p.RealisedPnL.Sub(t.Commission)
	}

	p.Quantity = totalQuantity
	p.amortiseCommission(t.Commission)

	if p.CurrentTime.IsZero() || t.Time.After(p.CurrentTime) {
		p.CurrentPrice = t.Price
		p.CurrentTime = t.Time
	}
	return nil
}

// realise locks in P&L on a closed quantity against the current book cost
func (p *Position) realise(closedQuantity, price decimal.Decimal) {
	gain := price.Sub(p.BookCostPerUnit).Mul(closedQuantity).Mul(p.Direction().Sign())
	p.RealisedPnL = p.RealisedPnL.Add(gain)
}

// amortiseCommission shares a commission charge across all units remaining
// in the position. A position closed exactly to zero has nothing left to
// amortise against
func (p *Position) amortiseCommission(commission decimal.Decimal) {
	if commission.IsZero() || p.Quantity.IsZero() {
		return
	}
	bookCost := p.BookCostPerUnit.Mul(p.Quantity).Add(commission)
	p.BookCostPerUnit = bookCost.Div(p.Quantity)
}

// UpdateCurrentPrice marks the position to a new trade price, which must not
// be negative nor earlier than the most recent time seen
func (p *Position) UpdateCurrentPrice(price decimal.Decimal, dt time.Time) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: %v for asset %s", ErrNegativePrice, price, p.Asset)
	}
	if dt.Before(p.CurrentTime) {
		return fmt.Errorf("%w: %v < %v for asset %s", ErrTimeOrder, dt, p.CurrentTime, p.Asset)
	}
	p.CurrentPrice = price
	p.CurrentTime = dt
	return nil
}

// Apply adjusts the position field by field from an explicit update struct
func (p *Position) Apply(u Update) error {
	if u.Price != nil && u.Price.IsNegative() {
		return fmt.Errorf("%w: %v for asset %s", ErrNegativePrice, *u.Price, p.Asset)
	}
	if u.Time != nil {
		if u.Time.Before(p.CurrentTime) {
			return fmt.Errorf("%w: %v < %v for asset %s", ErrTimeOrder, *u.Time, p.CurrentTime, p.Asset)
		}
		p.CurrentTime = *u.Time
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
	if u.Price != nil {
		p.CurrentPrice = *u.Price
	}
	return nil
}

// BookCost is the total cost basis of the position, signed
func (p *Position) BookCost() decimal.Decimal {
	return p.BookCostPerUnit.Mul(p.Quantity)
}

// MarketValue is the current mark price times the signed quantity
func (p *Position) MarketValue() decimal.Decimal {
	return p.CurrentPrice.Mul(p.Quantity)
}

// UnrealisedGain is the paper gain of the open quantity against book cost
func (p *Position) UnrealisedGain() decimal.Decimal {
	return p.MarketValue().Sub(p.BookCost())
}

// UnrealisedPercentageGain is the unrealised gain as a percentage of book
// cost, defined as zero when the book cost is zero
func (p *Position) UnrealisedPercentageGain() decimal.Decimal {
	bookCost := p.BookCost()
	if bookCost.IsZero() {
		return decimal.Zero
	}
	return p.Direction().Sign().Mul(p.UnrealisedGain()).Div(bookCost).Mul(oneHundred)
}

// TotalPnL is the sum of realised and unrealised P&L
func (p *Position) TotalPnL() decimal.Decimal {
	return p.RealisedPnL.Add(p.UnrealisedGain())
}
