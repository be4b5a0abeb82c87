// Package engine runs backtests, either as an event dispatch loop over a
// streamed market data feed or as a clock-driven rebalancing session
package engine

import (
	"github.com/quantave/backtester/broker"
	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/common"
	"github.com/quantave/backtester/data"
	"github.com/quantave/backtester/eventtypes/bar"
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/quantave/backtester/eventtypes/fill"
	orderev "github.com/quantave/backtester/eventtypes/order"
	"github.com/quantave/backtester/eventtypes/signal"
	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/size"
	"github.com/quantave/backtester/statistics"
	"github.com/quantave/backtester/strategies"
	"github.com/quantave/backtester/transaction"
)

// NewBacktest wires a dispatch loop backtest for one portfolio
func NewBacktest(strategy strategies.Handler, sizer *size.Size, b *broker.SimulatedBroker, stream *data.Streamer, stats *statistics.Statistic, portfolioID string) (*Backtest, error) {
	if strategy == nil || sizer == nil || b == nil || stream == nil || stats == nil {
		return nil, common.ErrNilArguments
	}
	return &Backtest{
		Strategy:    strategy,
		Sizer:       sizer,
		Broker:      b,
		Stream:      stream,
		Stats:       stats,
		PortfolioID: portfolioID,
	}, nil
}

// Reset rewinds the stream and clears all accumulated run state across the
// queue, broker, strategy and statistics. Broker portfolio funding is not
// replayed, subscribe funds again before the next Run
func (t *Backtest) Reset() {
	t.eventQueue = nil
	t.Stream.Reset()
	t.Stats.Reset()
	t.Strategy.Reset()
	t.Broker.Reset()
}

// Run drains the event queue until the data stream is exhausted or the
// iteration cap is hit
func (t *Backtest) Run() error {
	iterations := 0
	for e, ok := t.nextEvent(); true; e, ok = t.nextEvent() {
		if !ok {
			next, more := t.Stream.Next()
			if !more {
				break
			}
			t.eventQueue = append(t.eventQueue, barEvent(next))
			continue
		}

		iterations++
		if t.IterationCap > 0 && iterations > t.IterationCap {
			log.Warnf(log.Engine, "iteration cap of %d reached, stopping run", t.IterationCap)
			break
		}
		if err := t.eventLoop(e); err != nil {
			return err
		}
	}
	return nil
}

func (t *Backtest) nextEvent() (e event.Handler, ok bool) {
	if len(t.eventQueue) == 0 {
		return e, false
	}
	e = t.eventQueue[0]
	t.eventQueue = t.eventQueue[1:]
	return e, true
}

// bars are stamped at the session close their OHLCV describes
func barEvent(b data.Bar) *bar.Bar {
	return &bar.Bar{
		Base: event.Base{
			Time:  clock.MarketCloseTime(b.Time),
			Asset: b.Asset,
		},
		Open:   b.Open,
		High:   b.High,
		Low:    b.Low,
		Close:  b.Close,
		Volume: b.Volume,
	}
}

func (t *Backtest) eventLoop(e event.Handler) error {
	switch ev := e.(type) {
	case *bar.Bar:
		fills, err := t.Broker.Update(ev.GetTime())
		if err != nil {
			return err
		}
		t.queueFills(fills)

		equity, err := t.Broker.PortfolioTotalEquity(t.PortfolioID)
		if err != nil {
			return err
		}
		t.Stats.AddEquityPoint(ev.GetTime(), equity)

		sig, err := t.Strategy.OnBar(ev)
		if err != nil {
			return err
		}
		if sig != nil {
			t.eventQueue = append(t.eventQueue, sig)
		}

	case *signal.Signal:
		o, err := t.Sizer.SizeSignal(ev)
		if err != nil {
			return err
		}
		if o != nil {
			t.eventQueue = append(t.eventQueue, &orderev.Order{
				Base:        ev.Base,
				PortfolioID: t.PortfolioID,
				Order:       o,
			})
		}

	case *orderev.Order:
		if err := t.Broker.SubmitOrder(ev.PortfolioID, ev.Order); err != nil {
			return err
		}
		fills, err := t.Broker.Update(ev.GetTime())
		if err != nil {
			return err
		}
		t.queueFills(fills)

	case *fill.Fill:
		t.Stats.TrackTransaction(ev.Transaction)
	}
	return nil
}

func (t *Backtest) queueFills(fills []*transaction.Transaction) {
	for i := range fills {
		t.eventQueue = append(t.eventQueue, &fill.Fill{
			Base: event.Base{
				Time:  fills[i].Time,
				Asset: fills[i].Asset,
			},
			PortfolioID: t.PortfolioID,
			Transaction: fills[i],
		})
	}
}
