// Package buyandhold signals a single long entry per asset and then holds
package buyandhold

import (
	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/eventtypes/bar"
	"github.com/quantave/backtester/eventtypes/signal"
)

// Name of the strategy for registry lookup
const Name = "buyandhold"

// Strategy goes long each asset on its first bar and never trades again
type Strategy struct {
	invested map[string]bool
}

// New returns a buy and hold strategy
func New() *Strategy {
	return &Strategy{invested: make(map[string]bool)}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return Name
}

// Reset forgets all entered assets so a rerun enters them again
func (s *Strategy) Reset() {
	s.invested = make(map[string]bool)
}

// OnBar signals a long entry the first time an asset is seen
func (s *Strategy) OnBar(b *bar.Bar) (*signal.Signal, error) {
	if s.invested[b.Asset] {
		return nil, nil
	}
	s.invested[b.Asset] = true
	return &signal.Signal{
		Base:      b.Base,
		Direction: direction.Long,
		Price:     b.ClosePrice(),
	}, nil
}
