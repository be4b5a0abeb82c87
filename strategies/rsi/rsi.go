// Package rsi signals mean reversion entries and exits from the relative
// strength index of each asset's closing prices
package rsi

import (
	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/eventtypes/bar"
	"github.com/quantave/backtester/eventtypes/signal"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"
)

const (
	// Name is the strategy name
	Name = "rsi"

	defaultPeriod = 14
	defaultLow    = 30
	defaultHigh   = 70
)

// Strategy goes long when the RSI drops to the low watermark and short
// when it reaches the high watermark
type Strategy struct {
	period int
	low    decimal.Decimal
	high   decimal.Decimal
	closes map[string][]float64
}

// New returns an RSI strategy with the conventional 14 period 30/70 bands
func New() *Strategy {
	return &Strategy{
		period: defaultPeriod,
		low:    decimal.NewFromInt(defaultLow),
		high:   decimal.NewFromInt(defaultHigh),
		closes: make(map[string][]float64),
	}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Reset discards the accumulated close history
func (s *Strategy) Reset() {
	s.closes = make(map[string][]float64)
}

// OnBar appends the close to the asset's history and signals once enough
// data exists for the indicator to be meaningful
func (s *Strategy) OnBar(b *bar.Bar) (*signal.Signal, error) {
	closePrice, _ := b.ClosePrice().Float64()
	s.closes[b.Asset] = append(s.closes[b.Asset], closePrice)
	if len(s.closes[b.Asset]) <= s.period {
		return nil, nil
	}

	values := indicators.RSI(s.closes[b.Asset], s.period)
	latest := decimal.NewFromFloat(values[len(values)-1])

	var d direction.Direction
	switch {
	case latest.LessThanOrEqual(s.low):
		d = direction.Long
	case latest.GreaterThanOrEqual(s.high):
		d = direction.Short
	default:
		return nil, nil
	}
	return &signal.Signal{
		Base:      b.Base,
		Direction: d,
		Price:     b.ClosePrice(),
	}, nil
}
