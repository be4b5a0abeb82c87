package statistics

import (
	"testing"
	"time"

	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 23, 59, 0, 0, time.UTC)
}

func TestTotalEquityReturn(t *testing.T) {
	t.Parallel()
	s := New("buyandhold")
	_, err := s.TotalEquityReturn()
	assert.Error(t, err)

	s.AddEquityPoint(day(6), decimal.NewFromInt(100000))
	s.AddEquityPoint(day(7), decimal.NewFromInt(105000))
	s.AddEquityPoint(day(8), decimal.NewFromInt(110000))

	ret, err := s.TotalEquityReturn()
	require.NoError(t, err)
	assert.True(t, ret.Equal(decimal.NewFromInt(10)))
}

func TestDrawdown(t *testing.T) {
	t.Parallel()
	s := New("buyandhold")
	s.AddEquityPoint(day(6), decimal.NewFromInt(100000))
	s.AddEquityPoint(day(7), decimal.NewFromInt(120000))
	s.AddEquityPoint(day(8), decimal.NewFromInt(90000))
	s.AddEquityPoint(day(9), decimal.NewFromInt(110000))

	assert.True(t, s.MaxDrawdown().Equal(decimal.NewFromInt(-25)))
	assert.Equal(t, day(8), s.MaxDrawdownTime())
	assert.Equal(t, day(8).Sub(day(7)), s.MaxDrawdownDuration())
}

func TestRatios(t *testing.T) {
	t.Parallel()
	s := New("buyandhold")
	equities := []int64{100, 102, 101, 104, 103, 107}
	for i, e := range equities {
		s.AddEquityPoint(day(6+i), decimal.NewFromInt(e*1000))
	}
	assert.Greater(t, s.SharpeRatio(0), 0.0)
	assert.Greater(t, s.SortinoRatio(0), 0.0)

	empty := New("x")
	assert.Zero(t, empty.SharpeRatio(0))
	assert.Zero(t, empty.SortinoRatio(0))
}

func TestTrackTransactionAndReset(t *testing.T) {
	t.Parallel()
	s := New("buyandhold")
	s.TrackTransaction(nil)
	assert.Empty(t, s.Transactions())

	s.TrackTransaction(transaction.New("EQ:ABC", decimal.NewFromInt(1), day(6), decimal.NewFromInt(10), "o1", decimal.Zero))
	assert.Len(t, s.Transactions(), 1)

	s.AddEquityPoint(day(6), decimal.NewFromInt(1000))
	s.Reset()
	assert.Empty(t, s.Equity)
	assert.Empty(t, s.Transactions())
}
