package broker

import (
	"errors"
	"time"

	"github.com/quantave/backtester/data"
	"github.com/quantave/backtester/exchange"
	"github.com/quantave/backtester/fee"
	"github.com/quantave/backtester/order"
	"github.com/quantave/backtester/portfolio"
	"github.com/shopspring/decimal"
)

var (
	// ErrPortfolioExists is raised when a portfolio id is created twice
	ErrPortfolioExists = errors.New("portfolio id already exists")
	// ErrPortfolioNotFound is raised when an operation targets an unknown
	// portfolio id
	ErrPortfolioNotFound = errors.New("portfolio id not found")
	// ErrNoPriceAvailable is raised when no price exists for an asset at
	// order execution time
	ErrNoPriceAvailable = errors.New("no price available for asset")
	// ErrUnsupportedCurrency is raised when the account currency is not in
	// the supported set
	ErrUnsupportedCurrency = errors.New("unsupported account currency")
)

// currencies the simulated account can be denominated in
var supportedCurrencies = map[string]struct{}{
	"USD": {}, "GBP": {}, "EUR": {}, "JPY": {}, "CHF": {}, "AUD": {}, "CAD": {},
}

// SimulatedBroker executes orders against historical prices. It owns named
// portfolios, a master cash balance per currency and a FIFO open order
// queue per portfolio, and is driven forward by Update calls from the
// simulation loop
type SimulatedBroker struct {
	CurrentTime  time.Time
	BaseCurrency string

	start       time.Time
	initialCash decimal.Decimal
	venue       exchange.Venue
	prices      data.Handler
	feeModel    fee.Model
	masterCash  map[string]decimal.Decimal
	portfolios  map[string]*portfolio.Portfolio
	queues      map[string][]*order.Order
	// preserves portfolio creation order for deterministic iteration
	portfolioOrder []string
}

// Option adjusts broker construction
type Option func(*SimulatedBroker)

// WithInitialFunds credits the master account in the base currency at
// construction
func WithInitialFunds(amount decimal.Decimal) Option {
	return func(b *SimulatedBroker) {
		b.masterCash[b.BaseCurrency] = b.masterCash[b.BaseCurrency].Add(amount)
	}
}

// WithFeeModel replaces the default zero commission model
func WithFeeModel(m fee.Model) Option {
	return func(b *SimulatedBroker) {
		b.feeModel = m
	}
}
