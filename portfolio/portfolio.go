// Package portfolio couples the position ledger with an append-only cash
// history, settling every fund and asset movement against cash
package portfolio

import (
	"fmt"
	"time"

	"github.com/quantave/backtester/common"
	"github.com/quantave/backtester/ledger"
	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

// New returns an empty portfolio created at the supplied time
func New(id, name, currency string, createdAt time.Time) *Portfolio {
	return &Portfolio{
		ID:          id,
		Name:        name,
		Currency:    currency,
		CreatedAt:   createdAt,
		CurrentTime: createdAt,
		ledger:      ledger.New(),
	}
}

func (p *Portfolio) checkTime(dt time.Time) error {
	if dt.Before(p.CurrentTime) {
		return fmt.Errorf("%w: %v < %v for portfolio %s", common.ErrTimeOrder, dt, p.CurrentTime, p.ID)
	}
	return nil
}

func (p *Portfolio) record(dt time.Time, kind EventKind, description string, debit, credit decimal.Decimal) {
	p.history = append(p.history, Event{
		Time:        dt,
		Kind:        kind,
		Description: description,
		Debit:       debit.Round(2),
		Credit:      credit.Round(2),
		Balance:     p.ledger.CashBalance().Round(2),
	})
	p.CurrentTime = dt
}

// SubscribeFunds credits external capital into the portfolio cash balance
func (p *Portfolio) SubscribeFunds(dt time.Time, amount decimal.Decimal) error {
	if err := p.checkTime(dt); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: subscription of %v to portfolio %s", common.ErrNegativeAmount, amount, p.ID)
	}
	p.ledger.AdjustCash(amount)
	p.record(dt, Subscription, "SUBSCRIPTION", decimal.Zero, amount)
	log.Infof(log.Portfolio, "portfolio %s subscribed %v %s at %v", p.ID, amount, p.Currency, dt)
	return nil
}

// WithdrawFunds debits capital out of the portfolio cash balance. The
// withdrawal cannot exceed the cash held
func (p *Portfolio) WithdrawFunds(dt time.Time, amount decimal.Decimal) error {
	if err := p.checkTime(dt); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: withdrawal of %v from portfolio %s", common.ErrNegativeAmount, amount, p.ID)
	}
	if amount.GreaterThan(p.ledger.CashBalance()) {
		return fmt.Errorf("%w: withdrawal of %v exceeds balance %v in portfolio %s",
			common.ErrInsufficientFunds, amount, p.ledger.CashBalance(), p.ID)
	}
	p.ledger.AdjustCash(amount.Neg())
	p.record(dt, Withdrawal, "WITHDRAWAL", amount, decimal.Zero)
	log.Infof(log.Portfolio, "portfolio %s withdrew %v %s at %v", p.ID, amount, p.Currency, dt)
	return nil
}

// TransactAsset settles an executed order: the ledger position is updated
// and the total cost including commission is settled against cash. A buy
// whose total cost exceeds the available cash is rejected outright
func (p *Portfolio) TransactAsset(t *transaction.Transaction) error {
	if t == nil {
		return common.ErrNilArguments
	}
	if err := p.checkTime(t.Time); err != nil {
		return err
	}
	totalCost := t.ConsiderationWithCommission()
	if totalCost.GreaterThan(p.ledger.CashBalance()) {
		return fmt.Errorf("%w: transaction cost %v exceeds cash %v in portfolio %s",
			common.ErrInsufficientFunds, totalCost, p.ledger.CashBalance(), p.ID)
	}
	if err := p.ledger.Transact(t); err != nil {
		return err
	}
	p.ledger.AdjustCash(totalCost.Neg())

	description := fmt.Sprintf("%s %v %s %s %s",
		t.Direction(), t.Quantity.Abs(), t.Asset,
		t.Price.StringFixed(2), t.Time.Format("02/01/2006"))
	debit, credit := decimal.Zero, decimal.Zero
	if totalCost.IsNegative() {
		credit = totalCost.Neg()
	} else {
		debit = totalCost
	}
	p.record(t.Time, AssetTransaction, description, debit, credit)
	log.Infof(log.Portfolio, "portfolio %s transacted %s", p.ID, description)
	return nil
}

// CreditDividend credits a cash dividend for the quantity currently held
// in an asset
func (p *Portfolio) CreditDividend(dt time.Time, asset string, perShare decimal.Decimal) error {
	if err := p.checkTime(dt); err != nil {
		return err
	}
	if perShare.IsNegative() {
		return fmt.Errorf("%w: dividend of %v per share on %s", common.ErrNegativeAmount, perShare, asset)
	}
	quantity := p.ledger.Quantity(asset)
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: %s", ledger.ErrPositionNotFound, asset)
	}
	amount := perShare.Mul(quantity)
	p.ledger.AdjustCash(amount)
	p.record(dt, Dividend, fmt.Sprintf("DIVIDEND %s", asset), decimal.Zero, amount)
	log.Infof(log.Portfolio, "portfolio %s credited dividend %v on %s at %v", p.ID, amount, asset, dt)
	return nil
}

// UpdateMarketValueOfAsset marks the held position in an asset to a new
// trade price. Marking an asset that is not held is a no-op
func (p *Portfolio) UpdateMarketValueOfAsset(asset string, price decimal.Decimal, dt time.Time) error {
	if err := p.checkTime(dt); err != nil {
		return err
	}
	if _, ok := p.ledger.Position(asset); !ok {
		return nil
	}
	return p.ledger.MarkPrice(asset, price, dt)
}

// Cash returns the current cash balance
func (p *Portfolio) Cash() decimal.Decimal {
	return p.ledger.CashBalance()
}

// Assets lists the held assets in the order their positions were opened
func (p *Portfolio) Assets() []string {
	return p.ledger.Assets()
}

// Quantity returns the signed quantity held in an asset, zero if none
func (p *Portfolio) Quantity(asset string) decimal.Decimal {
	return p.ledger.Quantity(asset)
}

// TotalMarketValue sums the marked value of the open positions
func (p *Portfolio) TotalMarketValue() decimal.Decimal {
	return p.ledger.TotalMarketValue()
}

// TotalUnrealisedPnL sums the paper gain across the open positions
func (p *Portfolio) TotalUnrealisedPnL() decimal.Decimal {
	return p.ledger.TotalUnrealisedGain()
}

// TotalEquity is cash plus the marked value of every open position
func (p *Portfolio) TotalEquity() decimal.Decimal {
	return p.ledger.TotalEquity()
}

// Holdings snapshots every open position keyed by asset
func (p *Portfolio) Holdings() map[string]Holding {
	out := make(map[string]Holding)
	for _, asset := range p.ledger.Assets() {
		pos, ok := p.ledger.Position(asset)
		if !ok {
			continue
		}
		out[asset] = Holding{
			Quantity:      pos.Quantity,
			MarketValue:   pos.MarketValue(),
			UnrealisedPnL: pos.UnrealisedGain(),
			RealisedPnL:   pos.RealisedPnL,
			TotalPnL:      pos.TotalPnL(),
			BookCost:      pos.BookCost(),
			CurrentPrice:  pos.CurrentPrice,
		}
	}
	return out
}

// History returns a copy of the cash event history in recording order
func (p *Portfolio) History() []Event {
	out := make([]Event, len(p.history))
	copy(out, p.history)
	return out
}
