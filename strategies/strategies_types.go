package strategies

import (
	"github.com/quantave/backtester/eventtypes/bar"
	"github.com/quantave/backtester/eventtypes/signal"
)

// Handler is implemented by every strategy the engine can run
type Handler interface {
	Name() string
	OnBar(*bar.Bar) (*signal.Signal, error)
	Reset()
}

const errNotFound = "strategy %v not found"
