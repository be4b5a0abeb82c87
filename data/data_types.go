package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoData is raised when a source holds no bars for an asset
	ErrNoData = errors.New("no price data loaded for asset")
	// ErrBadRow is raised when a CSV row cannot be parsed into a bar
	ErrBadRow = errors.New("cannot parse csv price row")
)

// Handler supplies the broker with the latest known prices for an asset at
// a point in simulation time. The ok flag is false when no price is known
// at or before the queried time
type Handler interface {
	LatestBidAskPrice(dt time.Time, asset string) (bid, ask decimal.Decimal, ok bool)
}

// Bar is one daily OHLCV record for an asset
type Bar struct {
	Asset  string
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// pricePoint is a single tradeable price an asset was known to have at a
// moment in time. Daily bars decompose into an opening and a closing point
type pricePoint struct {
	time  time.Time
	price decimal.Decimal
}

// DailyBarSource holds daily bars for a set of assets and answers price
// queries by as-of lookup against the session open and close prints each
// bar contributes
type DailyBarSource struct {
	points map[string][]pricePoint
	bars   map[string][]Bar
}

// Streamer replays a merged, time-ordered sequence of bars one at a time,
// driving the event dispatch loop
type Streamer struct {
	bars   []Bar
	offset int
}
