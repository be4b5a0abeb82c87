package exchange

import "time"

// Venue reports whether the simulated trading venue accepts executions at a
// point in simulation time
type Venue interface {
	IsOpenAt(dt time.Time) bool
}

// AlwaysOpen is a venue with no trading calendar. Orders execute whenever
// the broker is updated
type AlwaysOpen struct{}

// Equity models a single-session equity venue trading weekdays between the
// market open and market close, UTC
type Equity struct{}
