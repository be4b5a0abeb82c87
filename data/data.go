// Package data loads historical daily bar data and serves as-of price
// lookups to the simulated broker and the event dispatch loop
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quantave/backtester/clock"
	"github.com/quantave/backtester/log"
	"github.com/shopspring/decimal"
)

// NewDailyBarSource returns an empty source. Assets are added with
// AddBars or LoadCSVDir
func NewDailyBarSource() *DailyBarSource {
	return &DailyBarSource{
		points: make(map[string][]pricePoint),
		bars:   make(map[string][]Bar),
	}
}

// AddBars registers daily bars for an asset. Each bar contributes an
// opening print at the session open and a closing print at the session
// close of its day
func (s *DailyBarSource) AddBars(asset string, bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("%w: %s", ErrNoData, asset)
	}
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	points := make([]pricePoint, 0, len(sorted)*2)
	for i := range sorted {
		points = append(points,
			pricePoint{time: clock.MarketOpenTime(sorted[i].Time), price: sorted[i].Open},
			pricePoint{time: clock.MarketCloseTime(sorted[i].Time), price: sorted[i].Close},
		)
	}
	s.bars[asset] = sorted
	s.points[asset] = points
	log.Debugf(log.Data, "loaded %d bars for %s", len(sorted), asset)
	return nil
}

// LoadCSVDir loads every SYMBOL.csv file under dir, registering each under
// the asset name "EQ:SYMBOL"
func (s *DailyBarSource) LoadCSVDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no csv files under %s", ErrNoData, dir)
	}
	for _, path := range matches {
		symbol := strings.TrimSuffix(filepath.Base(path), ".csv")
		bars, err := readCSVBars(path, "EQ:"+strings.ToUpper(symbol))
		if err != nil {
			return err
		}
		if err = s.AddBars("EQ:"+strings.ToUpper(symbol), bars); err != nil {
			return err
		}
	}
	return nil
}

func readCSVBars(path, asset string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, asset)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("%w: %s missing %q column", ErrBadRow, path, required)
		}
	}

	bars := make([]Bar, 0, len(records)-1)
	for _, row := range records[1:] {
		bar, err := parseBar(row, header, asset)
		if err != nil {
			return nil, fmt.Errorf("%v in %s", err, path)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(row []string, header map[string]int, asset string) (Bar, error) {
	dt, err := time.ParseInLocation("2006-01-02", row[header["date"]], time.UTC)
	if err != nil {
		return Bar{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	bar := Bar{Asset: asset, Time: dt}
	fields := map[string]*decimal.Decimal{
		"open":  &bar.Open,
		"high":  &bar.High,
		"low":   &bar.Low,
		"close": &bar.Close,
	}
	for name, dst := range fields {
		*dst, err = decimal.NewFromString(row[header[name]])
		if err != nil {
			return Bar{}, fmt.Errorf("%w: %q for %s", ErrBadRow, row[header[name]], name)
		}
	}
	if i, ok := header["volume"]; ok && i < len(row) && row[i] != "" {
		bar.Volume, err = decimal.NewFromString(row[i])
		if err != nil {
			return Bar{}, fmt.Errorf("%w: %q for volume", ErrBadRow, row[i])
		}
	}
	return bar, nil
}

// LatestBidAskPrice answers the most recent print at or before dt. Daily
// bars carry no spread, so bid and ask are both the print price
func (s *DailyBarSource) LatestBidAskPrice(dt time.Time, asset string) (bid, ask decimal.Decimal, ok bool) {
	points := s.points[asset]
	// Index of the first point after dt
	i := sort.Search(len(points), func(i int) bool { return points[i].time.After(dt) })
	if i == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	price := points[i-1].price
	return price, price, true
}

// Bars returns the loaded bars for an asset in time order
func (s *DailyBarSource) Bars(asset string) []Bar {
	return s.bars[asset]
}

// Assets lists the assets with data loaded, sorted by name
func (s *DailyBarSource) Assets() []string {
	out := make([]string, 0, len(s.bars))
	for asset := range s.bars {
		out = append(out, asset)
	}
	sort.Strings(out)
	return out
}

// Mid is the midpoint of a bid ask pair
func Mid(bid, ask decimal.Decimal) decimal.Decimal {
	return bid.Add(ask).Div(decimal.NewFromInt(2))
}

// NewStreamer merges the bars of every asset in a source into one
// time-ordered stream
func NewStreamer(s *DailyBarSource) *Streamer {
	var all []Bar
	for _, asset := range s.Assets() {
		all = append(all, s.bars[asset]...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Time.Before(all[j].Time) })
	return &Streamer{bars: all}
}

// Next returns the next bar in time order, reporting false once exhausted
func (st *Streamer) Next() (Bar, bool) {
	if st.offset >= len(st.bars) {
		return Bar{}, false
	}
	bar := st.bars[st.offset]
	st.offset++
	return bar, true
}

// Reset rewinds the stream to the first bar
func (st *Streamer) Reset() {
	st.offset = 0
}

// Remaining reports how many bars are left to stream
func (st *Streamer) Remaining() int {
	return len(st.bars) - st.offset
}
