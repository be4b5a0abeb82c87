package rebalance

import (
	"errors"
	"time"
)

var (
	// ErrInvalidWeekday is raised when a weekly schedule is requested on a
	// day that is not a recognised business weekday
	ErrInvalidWeekday = errors.New("weekday keyword is not recognised or not a valid weekday")
)

// weekday keywords accepted by Weekly
var weekdays = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
}
