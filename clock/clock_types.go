package clock

import (
	"errors"
	"time"
)

// Phase describes the intraday stage a simulation event belongs to. Phases
// are strictly ordered within a day: pre-market < market open < market close
// < post-market
type Phase string

const (
	// PreMarket occurs at the very start of the trading day
	PreMarket Phase = "pre_market"
	// MarketOpen occurs when the venue opens
	MarketOpen Phase = "market_open"
	// MarketClose occurs when the venue closes
	MarketClose Phase = "market_close"
	// PostMarket occurs at the very end of the trading day
	PostMarket Phase = "post_market"
)

var (
	// ErrEndBeforeStart is raised at construction when the simulation range
	// is reversed
	ErrEndBeforeStart = errors.New("ending date time is earlier than starting date time")
)

// Event is an immutable timestamped phase marker produced by the Clock and
// consumed by the dispatch loop
type Event struct {
	Time  time.Time
	Phase Phase
}

// Clock lazily generates a totally ordered, restartable sequence of
// business-day phase events between two dates. Saturdays and Sundays are
// skipped; holiday calendars are not consulted
type Clock struct {
	start      time.Time
	end        time.Time
	phases     []Phase
	cursor     time.Time
	phaseIndex int
}
