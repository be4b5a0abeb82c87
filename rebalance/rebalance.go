// Package rebalance generates the ordered timestamp schedules at which the
// strategy layer is asked to reconsider its target weights. Schedules are
// pure functions of the date range; all timestamps are UTC
package rebalance

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/common"
)

// BuyAndHold produces a single rebalance timestamp, the start date shifted
// forward to the next business day when it falls on a weekend
func BuyAndHold(start time.Time) []time.Time {
	return []time.Time{common.NextBusinessDay(start.UTC())}
}

// Daily produces one timestamp per business day between start and end at
// market open when preMarket is set, otherwise at market close
func Daily(start, end time.Time, preMarket bool) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v < %v", common.ErrDateEndBeforeStart, end, start)
	}
	var ts []time.Time
	for d := common.BOD(start.UTC()); !d.After(common.BOD(end.UTC())); d = d.AddDate(0, 0, 1) {
		if !common.IsBusinessDay(d) {
			continue
		}
		ts = append(ts, marketTime(d, preMarket))
	}
	return ts, nil
}

// Weekly produces one timestamp per calendar week on the requested weekday,
// one of MON, TUE, WED, THU or FRI. An unrecognised weekday is a
// configuration error, not a silent no-op
func Weekly(start, end time.Time, weekday string, preMarket bool) ([]time.Time, error) {
	wd, ok := weekdays[strings.ToUpper(weekday)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, weekday)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v < %v", common.ErrDateEndBeforeStart, end, start)
	}
	var ts []time.Time
	for d := common.BOD(start.UTC()); !d.After(common.BOD(end.UTC())); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != wd {
			continue
		}
		ts = append(ts, marketTime(d, preMarket))
	}
	return ts, nil
}

// EndOfMonth produces one timestamp per month on the last calendar day of
// the month, whether or not that day is a business day
func EndOfMonth(start, end time.Time, preMarket bool) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v < %v", common.ErrDateEndBeforeStart, end, start)
	}
	var ts []time.Time
	startDay := common.BOD(start.UTC())
	endDay := common.BOD(end.UTC())
	for d := common.LastDayOfMonth(startDay); !d.After(endDay); d = common.LastDayOfMonth(d.AddDate(0, 0, 1)) {
		ts = append(ts, marketTime(d, preMarket))
	}
	return ts, nil
}

func marketTime(day time.Time, preMarket bool) time.Time {
	if preMarket {
		return clock.MarketOpenTime(day)
	}
	return clock.MarketCloseTime(day)
}
