// Package broker simulates order execution against historical prices,
// keeping master account cash and per-portfolio open order queues
package broker

import (
	"fmt"
	"sort"
	"time"

	"github.com/quantave/backtester/common"
	"github.com/quantave/backtester/data"
	"github.com/quantave/backtester/exchange"
	"github.com/quantave/backtester/fee"
	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/order"
	"github.com/quantave/backtester/portfolio"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
)

// New returns a simulated broker denominated in the supplied currency,
// pricing executions from the data handler and honouring the venue's
// trading calendar
func New(start time.Time, currency string, venue exchange.Venue, prices data.Handler, opts ...Option) (*SimulatedBroker, error) {
	if venue == nil || prices == nil {
		return nil, common.ErrNilArguments
	}
	if _, ok := supportedCurrencies[currency]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	b := &SimulatedBroker{
		CurrentTime:  start,
		BaseCurrency: currency,
		start:        start,
		venue:        venue,
		prices:       prices,
		feeModel:     fee.Zero{},
		masterCash:   make(map[string]decimal.Decimal),
		portfolios:   make(map[string]*portfolio.Portfolio),
		queues:       make(map[string][]*order.Order),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.masterCash[b.BaseCurrency].IsNegative() {
		return nil, fmt.Errorf("%w: initial funds %v", common.ErrNegativeAmount, b.masterCash[b.BaseCurrency])
	}
	b.initialCash = b.masterCash[b.BaseCurrency]
	return b, nil
}

// Reset returns the broker to its post-construction state: time rewinds to
// the start, master cash is restored to the initial funds and every
// registered portfolio is recreated empty with its order queue cleared.
// Portfolio funding is not replayed, subscribe funds again before rerunning
func (b *SimulatedBroker) Reset() {
	b.CurrentTime = b.start
	b.masterCash = map[string]decimal.Decimal{b.BaseCurrency: b.initialCash}
	for _, id := range b.portfolioOrder {
		p := b.portfolios[id]
		b.portfolios[id] = portfolio.New(id, p.Name, b.BaseCurrency, b.start)
		b.queues[id] = nil
	}
}

// SubscribeFundsToAccount credits the master cash balance in the base
// currency
func (b *SimulatedBroker) SubscribeFundsToAccount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: account subscription of %v", common.ErrNegativeAmount, amount)
	}
	b.masterCash[b.BaseCurrency] = b.masterCash[b.BaseCurrency].Add(amount)
	log.Infof(log.Broker, "subscribed %v %s to master account", amount, b.BaseCurrency)
	return nil
}

// WithdrawFundsFromAccount debits the master cash balance in the base
// currency
func (b *SimulatedBroker) WithdrawFundsFromAccount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: account withdrawal of %v", common.ErrNegativeAmount, amount)
	}
	if amount.GreaterThan(b.masterCash[b.BaseCurrency]) {
		return fmt.Errorf("%w: withdrawal of %v exceeds master balance %v",
			common.ErrInsufficientFunds, amount, b.masterCash[b.BaseCurrency])
	}
	b.masterCash[b.BaseCurrency] = b.masterCash[b.BaseCurrency].Sub(amount)
	log.Infof(log.Broker, "withdrew %v %s from master account", amount, b.BaseCurrency)
	return nil
}

// MasterCashBalance returns the un-allocated master balance in a currency
func (b *SimulatedBroker) MasterCashBalance(currency string) decimal.Decimal {
	return b.masterCash[currency]
}

// CreatePortfolio registers a new empty portfolio under a unique id
func (b *SimulatedBroker) CreatePortfolio(id, name string) error {
	if _, ok := b.portfolios[id]; ok {
		return fmt.Errorf("%w: %s", ErrPortfolioExists, id)
	}
	b.portfolios[id] = portfolio.New(id, name, b.BaseCurrency, b.CurrentTime)
	b.queues[id] = nil
	b.portfolioOrder = append(b.portfolioOrder, id)
	log.Infof(log.Broker, "created portfolio %s (%s)", id, name)
	return nil
}

// SubscribeFundsToPortfolio moves funds from the master account into a
// portfolio. The transfer is conserved: the master balance decreases by
// exactly what the portfolio's cash increases
func (b *SimulatedBroker) SubscribeFundsToPortfolio(id string, amount decimal.Decimal) error {
	p, ok := b.portfolios[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: portfolio subscription of %v", common.ErrNegativeAmount, amount)
	}
	if amount.GreaterThan(b.masterCash[b.BaseCurrency]) {
		return fmt.Errorf("%w: subscription of %v exceeds master balance %v",
			common.ErrInsufficientFunds, amount, b.masterCash[b.BaseCurrency])
	}
	if err := p.SubscribeFunds(b.CurrentTime, amount); err != nil {
		return err
	}
	b.masterCash[b.BaseCurrency] = b.masterCash[b.BaseCurrency].Sub(amount)
	return nil
}

// WithdrawFundsFromPortfolio moves funds out of a portfolio back into the
// master account
func (b *SimulatedBroker) WithdrawFundsFromPortfolio(id string, amount decimal.Decimal) error {
	p, ok := b.portfolios[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	if err := p.WithdrawFunds(b.CurrentTime, amount); err != nil {
		return err
	}
	b.masterCash[b.BaseCurrency] = b.masterCash[b.BaseCurrency].Add(amount)
	return nil
}

// SubmitOrder appends an order to the portfolio's open order queue. It is
// held there until the next Update at which the venue is open
func (b *SimulatedBroker) SubmitOrder(id string, o *order.Order) error {
	if o == nil {
		return common.ErrNilArguments
	}
	if _, ok := b.portfolios[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	b.queues[id] = append(b.queues[id], o)
	log.Debugf(log.Broker, "queued order %s: %v %s for portfolio %s", o.ID, o.Quantity, o.Asset, id)
	return nil
}

// OpenOrders reports how many orders are queued for a portfolio
func (b *SimulatedBroker) OpenOrders(id string) int {
	return len(b.queues[id])
}

// Update advances the broker to dt: every held position in every portfolio
// is marked to the latest mid price, then, if the venue is open, all queued
// orders are drained and executed with sells ahead of buys so that closing
// trades free cash before opening trades need it. The executed fills are
// returned in execution order
func (b *SimulatedBroker) Update(dt time.Time) ([]*transaction.Transaction, error) {
	if dt.Before(b.CurrentTime) {
		return nil, fmt.Errorf("%w: %v < %v", common.ErrTimeOrder, dt, b.CurrentTime)
	}
	b.CurrentTime = dt

	for _, id := range b.portfolioOrder {
		p := b.portfolios[id]
		for _, asset := range p.Assets() {
			bid, ask, ok := b.prices.LatestBidAskPrice(dt, asset)
			if !ok {
				log.Debugf(log.Broker, "no mark available for %s at %v", asset, dt)
				continue
			}
			if err := p.UpdateMarketValueOfAsset(asset, data.Mid(bid, ask), dt); err != nil {
				return nil, err
			}
		}
	}

	if !b.venue.IsOpenAt(dt) {
		return nil, nil
	}

	type queued struct {
		portfolioID string
		order       *order.Order
	}
	var pending []queued
	for _, id := range b.portfolioOrder {
		for _, o := range b.queues[id] {
			pending = append(pending, queued{portfolioID: id, order: o})
		}
		b.queues[id] = nil
	}
	// Sells and shorts execute ahead of buys and covers
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].order.Direction() < pending[j].order.Direction()
	})

	var fills []*transaction.Transaction
	for i := range pending {
		txn, err := b.executeOrder(dt, pending[i].portfolioID, pending[i].order)
		if err != nil {
			return fills, err
		}
		if txn != nil {
			fills = append(fills, txn)
		}
	}
	return fills, nil
}

// executeOrder prices an order off the latest bid/ask, scales it down when
// the portfolio cannot afford the full quantity and settles the resulting
// fill against the portfolio
func (b *SimulatedBroker) executeOrder(dt time.Time, id string, o *order.Order) (*transaction.Transaction, error) {
	p := b.portfolios[id]
	bid, ask, ok := b.prices.LatestBidAskPrice(dt, o.Asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s at %v for order %s", ErrNoPriceAvailable, o.Asset, dt, o.ID)
	}
	price := bid
	if o.Quantity.IsPositive() {
		price = ask
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: %s quoted at %v at %v for order %s", ErrNoPriceAvailable, o.Asset, price, dt, o.ID)
	}

	quantity := o.Quantity
	consideration := price.Mul(quantity).Round(2)
	commission := b.commissionFor(o, quantity, consideration)

	// affordability is judged on the exact settlement cost the portfolio
	// will debit, not the rounded consideration
	if cash := p.Cash(); price.Mul(quantity).Add(commission).GreaterThan(cash) {
		scaled := cash.Div(price).Floor()
		if scaled.GreaterThan(o.Quantity.Abs()) {
			scaled = o.Quantity.Abs()
		}
		// the scaled fill carries its own commission, which must also fit
		// inside the cash balance
		for scaled.IsPositive() {
			quantity = scaled.Mul(o.Direction().Sign())
			consideration = price.Mul(quantity).Round(2)
			commission = b.commissionFor(o, quantity, consideration)
			if price.Mul(quantity).Add(commission).LessThanOrEqual(cash) {
				break
			}
			next := cash.Sub(commission).Div(price).Floor()
			if next.GreaterThanOrEqual(scaled) {
				next = scaled.Sub(decimal.NewFromInt(1))
			}
			scaled = next
		}
		log.Warnf(log.Broker, "order %s for %v %s exceeds cash %v in portfolio %s, scaling quantity to %v",
			o.ID, o.Quantity, o.Asset, cash, id, scaled.Mul(o.Direction().Sign()))
		if !scaled.IsPositive() {
			return nil, nil
		}
	}

	txn := transaction.New(o.Asset, quantity, dt, price, o.ID, commission)
	if err := p.TransactAsset(txn); err != nil {
		return nil, err
	}
	log.Infof(log.Broker, "executed order %s: %v %s at %v commission %v for portfolio %s",
		o.ID, quantity, o.Asset, price, commission, id)
	return txn, nil
}

func (b *SimulatedBroker) commissionFor(o *order.Order, quantity, consideration decimal.Decimal) decimal.Decimal {
	if o.Commission.IsPositive() {
		return o.Commission
	}
	return b.feeModel.CalcTotalCost(o.Asset, quantity, consideration)
}

// PortfolioCash returns the cash balance of a portfolio
func (b *SimulatedBroker) PortfolioCash(id string) (decimal.Decimal, error) {
	p, ok := b.portfolios[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	return p.Cash(), nil
}

// PortfolioHoldings snapshots the open positions of a portfolio
func (b *SimulatedBroker) PortfolioHoldings(id string) (map[string]portfolio.Holding, error) {
	p, ok := b.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	return p.Holdings(), nil
}

// PortfolioTotalEquity returns cash plus market value for one portfolio
func (b *SimulatedBroker) PortfolioTotalEquity(id string) (decimal.Decimal, error) {
	p, ok := b.portfolios[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	return p.TotalEquity(), nil
}

// PortfolioHistory returns the cash event history of a portfolio
func (b *SimulatedBroker) PortfolioHistory(id string) ([]portfolio.Event, error) {
	p, ok := b.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, id)
	}
	return p.History(), nil
}

// AccountTotalEquity reports the equity of every portfolio keyed by id,
// plus the master balance under the reserved key "master"
func (b *SimulatedBroker) AccountTotalEquity() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b.portfolios)+1)
	total := b.masterCash[b.BaseCurrency]
	for _, id := range b.portfolioOrder {
		equity := b.portfolios[id].TotalEquity()
		out[id] = equity
		total = total.Add(equity)
	}
	out["master"] = b.masterCash[b.BaseCurrency]
	out["total"] = total
	return out
}
