package engine

import (
	"time"

	"github.com/quantave/backtester/broker"
	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/data"
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/quantave/backtester/order"
	"github.com/quantave/backtester/report"
	"github.com/quantave/backtester/size"
	"github.com/quantave/backtester/statistics"
	"github.com/quantave/backtester/strategies"
)

// Backtest drains a FIFO event queue, routing each event to exactly one
// handler. When the queue runs dry the next market bar is pulled from the
// stream; the run ends when the stream is exhausted or the iteration cap
// is reached
type Backtest struct {
	Strategy    strategies.Handler
	Sizer       *size.Size
	Broker      *broker.SimulatedBroker
	Stream      *data.Streamer
	Stats       *statistics.Statistic
	PortfolioID string
	// IterationCap bounds processed events, zero meaning unbounded
	IterationCap int

	eventQueue []event.Handler
}

// Rebalancer produces the orders to submit at a scheduled rebalance time
type Rebalancer func(dt time.Time) ([]*order.Order, error)

// Session drives the broker from simulation clock events: every event
// marks and executes through the broker, scheduled rebalance times invoke
// the rebalancer and each post-market phase snapshots account equity
type Session struct {
	Clock       *clock.Clock
	Broker      *broker.SimulatedBroker
	Stats       *statistics.Statistic
	PortfolioID string
	Rebalance   Rebalancer

	rebalanceAt map[time.Time]struct{}

	// optional persistence, nil disables each sink
	EquityCSV *report.CSVWriter
	Store     *report.Store
	RunName   string
}
