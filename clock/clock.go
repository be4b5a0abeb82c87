package clock

import (
	"fmt"
	"time"

	"github.com/quantave/backtester/common"
)

// Intraday phase times, UTC, matching a US equities venue
const (
	marketOpenHour   = 14
	marketOpenMinute = 30
	marketCloseHour  = 21
	postMarketHour   = 23
	postMarketMinute = 59
)

// New validates the date range and returns a Clock. All timestamps are
// normalised to UTC midnight dates; end < start is a configuration error
// raised here, never at iteration time
func New(start, end time.Time, preMarket, postMarket bool) (*Clock, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v < %v", ErrEndBeforeStart, end, start)
	}
	phases := make([]Phase, 0, 4)
	if preMarket {
		phases = append(phases, PreMarket)
	}
	phases = append(phases, MarketOpen, MarketClose)
	if postMarket {
		phases = append(phases, PostMarket)
	}
	c := &Clock{
		start:  common.BOD(start.UTC()),
		end:    common.BOD(end.UTC()),
		phases: phases,
	}
	c.Reset()
	return c, nil
}

// Reset rewinds the clock so the sequence can be replayed from the start
func (c *Clock) Reset() {
	c.cursor = common.NextBusinessDay(c.start)
	c.phaseIndex = 0
}

// Next returns the next simulation event in strict timestamp order. The
// second return is false once the range is exhausted
func (c *Clock) Next() (Event, bool) {
	if c.cursor.After(c.end) {
		return Event{}, false
	}
	ev := Event{
		Time:  phaseTime(c.cursor, c.phases[c.phaseIndex]),
		Phase: c.phases[c.phaseIndex],
	}
	c.phaseIndex++
	if c.phaseIndex == len(c.phases) {
		c.phaseIndex = 0
		c.cursor = common.NextBusinessDay(c.cursor.AddDate(0, 0, 1))
	}
	return ev, true
}

// All drains a reset copy of the sequence into a slice, mainly for schedule
// inspection and tests
func (c *Clock) All() []Event {
	defer c.Reset()
	c.Reset()
	var evs []Event
	for ev, ok := c.Next(); ok; ev, ok = c.Next() {
		evs = append(evs, ev)
	}
	return evs
}

func phaseTime(day time.Time, p Phase) time.Time {
	switch p {
	case MarketOpen:
		return time.Date(day.Year(), day.Month(), day.Day(), marketOpenHour, marketOpenMinute, 0, 0, time.UTC)
	case MarketClose:
		return time.Date(day.Year(), day.Month(), day.Day(), marketCloseHour, 0, 0, 0, time.UTC)
	case PostMarket:
		return time.Date(day.Year(), day.Month(), day.Day(), postMarketHour, postMarketMinute, 0, 0, time.UTC)
	}
	return common.BOD(day)
}

// MarketOpenTime returns the venue opening time on the supplied day
func MarketOpenTime(day time.Time) time.Time {
	return phaseTime(day.UTC(), MarketOpen)
}

// MarketCloseTime returns the venue closing time on the supplied day
func MarketCloseTime(day time.Time) time.Time {
	return phaseTime(day.UTC(), MarketClose)
}
