package engine

import (
	"time"

	"github.com/quantave/backtester/broker"
	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/common"
	"github.com/quantave/backtester/log"
	"github.com/quantave/backtester/statistics"
)

// NewSession wires a clock-driven session for one portfolio. rebalanceAt
// lists the scheduled times at which the rebalancer is consulted
func NewSession(clk *clock.Clock, b *broker.SimulatedBroker, stats *statistics.Statistic, portfolioID string, rebalanceAt []time.Time, rebalance Rebalancer) (*Session, error) {
	if clk == nil || b == nil || stats == nil {
		return nil, common.ErrNilArguments
	}
	at := make(map[time.Time]struct{}, len(rebalanceAt))
	for _, dt := range rebalanceAt {
		at[dt] = struct{}{}
	}
	return &Session{
		Clock:       clk,
		Broker:      b,
		Stats:       stats,
		PortfolioID: portfolioID,
		Rebalance:   rebalance,
		rebalanceAt: at,
	}, nil
}

// Run walks the simulation clock to its end. Every event drives a broker
// update, scheduled times invoke the rebalancer and each post-market phase
// snapshots account equity to the statistics tracker and the configured
// report sinks
func (s *Session) Run() error {
	s.Clock.Reset()
	for ev, ok := s.Clock.Next(); ok; ev, ok = s.Clock.Next() {
		fills, err := s.Broker.Update(ev.Time)
		if err != nil {
			return err
		}
		for i := range fills {
			s.Stats.TrackTransaction(fills[i])
		}

		if _, scheduled := s.rebalanceAt[ev.Time]; scheduled && s.Rebalance != nil {
			orders, err := s.Rebalance(ev.Time)
			if err != nil {
				return err
			}
			for i := range orders {
				if err = s.Broker.SubmitOrder(s.PortfolioID, orders[i]); err != nil {
					return err
				}
			}
			log.Debugf(log.Engine, "rebalance at %v submitted %d orders", ev.Time, len(orders))
		}

		if ev.Phase == clock.PostMarket {
			if err = s.snapshotEquity(ev.Time); err != nil {
				return err
			}
		}
	}
	log.Infof(log.Engine, "session complete, %d equity points recorded", len(s.Stats.Equity))
	return nil
}

func (s *Session) snapshotEquity(dt time.Time) error {
	equity, err := s.Broker.PortfolioTotalEquity(s.PortfolioID)
	if err != nil {
		return err
	}
	s.Stats.AddEquityPoint(dt, equity)
	if s.EquityCSV != nil {
		if err = s.EquityCSV.Append(dt, equity); err != nil {
			return err
		}
	}
	if s.Store != nil {
		if err = s.Store.InsertSnapshot(s.RunName, dt, equity); err != nil {
			return err
		}
	}
	return nil
}
