// Package ledger holds the open positions of a single portfolio together
// with its cash balance, and aggregates their cost, value and P&L
package ledger

import (
	"fmt"
	"time"

	"github.com/quantave/backtester/position"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

// New returns an empty ledger holding a zero cash balance
func New() *Ledger {
	l := &Ledger{
		positions: make(map[string]*position.Position),
	}
	cash := position.New(CashAsset)
	cash.BookCostPerUnit = decimal.NewFromInt(1)
	cash.CurrentPrice = decimal.NewFromInt(1)
	l.positions[CashAsset] = cash
	return l
}

// CashBalance returns the current cash held by the ledger
func (l *Ledger) CashBalance() decimal.Decimal {
	return l.positions[CashAsset].Quantity
}

// SetCashBalance overwrites the cash held by the ledger
func (l *Ledger) SetCashBalance(amount decimal.Decimal) {
	l.positions[CashAsset].Quantity = amount
}

// AdjustCash adds a signed amount to the cash balance
func (l *Ledger) AdjustCash(amount decimal.Decimal) {
	cash := l.positions[CashAsset]
	cash.Quantity = cash.Quantity.Add(amount)
}

// Transact applies a fill to the position in its asset, opening a new
// position when none is held and evicting the position when the fill
// closes it exactly to zero. The cash balance is not touched; settlement
// is the caller's concern
func (l *Ledger) Transact(t *transaction.Transaction) error {
	if t == nil {
		return position.ErrNilTransaction
	}
	if t.Asset == CashAsset {
		return fmt.Errorf("%w: %s", ErrReservedAsset, t.Asset)
	}
	p, ok := l.positions[t.Asset]
	if !ok {
		p = position.New(t.Asset)
		l.positions[t.Asset] = p
		l.order = append(l.order, t.Asset)
	}
	if err := p.Transact(t); err != nil {
		return err
	}
	if p.Quantity.IsZero() {
		l.evict(t.Asset)
	}
	return nil
}

func (l *Ledger) evict(asset string) {
	delete(l.positions, asset)
	for i := range l.order {
		if l.order[i] == asset {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// Position returns the open position in an asset, if held
func (l *Ledger) Position(asset string) (*position.Position, bool) {
	if asset == CashAsset {
		return nil, false
	}
	p, ok := l.positions[asset]
	return p, ok
}

// Assets lists the held assets, cash excluded, in the order their
// positions were first opened
func (l *Ledger) Assets() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Quantity returns the signed quantity held in an asset, zero if none
func (l *Ledger) Quantity(asset string) decimal.Decimal {
	p, ok := l.Position(asset)
	if !ok {
		return decimal.Zero
	}
	return p.Quantity
}

// MarkPrice updates the current price of the position held in an asset
func (l *Ledger) MarkPrice(asset string, price decimal.Decimal, dt time.Time) error {
	p, ok := l.Position(asset)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPositionNotFound, asset)
	}
	return p.UpdateCurrentPrice(price, dt)
}

// UpdatePosition applies an explicit field by field adjustment to the
// position held in an asset
func (l *Ledger) UpdatePosition(asset string, u position.Update) error {
	if asset == CashAsset {
		return fmt.Errorf("%w: %s", ErrReservedAsset, asset)
	}
	p, ok := l.positions[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPositionNotFound, asset)
	}
	if err := p.Apply(u); err != nil {
		return err
	}
	if p.Quantity.IsZero() {
		l.evict(asset)
	}
	return nil
}

// TotalBookCost sums the cost basis of all open positions, cash excluded
func (l *Ledger) TotalBookCost() decimal.Decimal {
	total := decimal.Zero
	for _, asset := range l.order {
		total = total.Add(l.positions[asset].BookCost())
	}
	return total
}

// TotalMarketValue sums the marked value of all open positions, cash
// excluded
func (l *Ledger) TotalMarketValue() decimal.Decimal {
	total := decimal.Zero
	for _, asset := range l.order {
		total = total.Add(l.positions[asset].MarketValue())
	}
	return total
}

// TotalUnrealisedGain sums the paper gain across all open positions
func (l *Ledger) TotalUnrealisedGain() decimal.Decimal {
	total := decimal.Zero
	for _, asset := range l.order {
		total = total.Add(l.positions[asset].UnrealisedGain())
	}
	return total
}

// TotalRealisedPnL sums the realised P&L carried by the open positions.
// P&L realised by positions that have since been evicted is not retained
// here; the portfolio records it through its cash movements
func (l *Ledger) TotalRealisedPnL() decimal.Decimal {
	total := decimal.Zero
	for _, asset := range l.order {
		total = total.Add(l.positions[asset].RealisedPnL)
	}
	return total
}

// TotalEquity is the cash balance plus the marked value of every open
// position
func (l *Ledger) TotalEquity() decimal.Decimal {
	return l.CashBalance().Add(l.TotalMarketValue())
}
