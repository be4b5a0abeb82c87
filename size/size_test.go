package size

import (
	"testing"
	"time"

	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/eventtypes/event"
	"github.com/quantave/backtester/eventtypes/signal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignal(d direction.Direction, price float64) *signal.Signal {
	return &signal.Signal{
		Base: event.Base{
			Time:  time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC),
			Asset: "EQ:ABC",
		},
		Direction: d,
		Price:     decimal.NewFromFloat(price),
	}
}

func TestSizeSignalNoGuidance(t *testing.T) {
	t.Parallel()
	s := &Size{}
	_, err := s.SizeSignal(newSignal(direction.Long, 100))
	assert.ErrorIs(t, err, ErrNoSizingGuidance)
}

func TestSizeSignalDefaultQuantity(t *testing.T) {
	t.Parallel()
	s := &Size{DefaultQuantity: decimal.NewFromInt(100)}
	o, err := s.SizeSignal(newSignal(direction.Long, 567))
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.True(t, o.Quantity.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "EQ:ABC", o.Asset)

	o, err = s.SizeSignal(newSignal(direction.Short, 567))
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.True(t, o.Quantity.Equal(decimal.NewFromInt(-100)))
}

func TestSizeSignalTargetValue(t *testing.T) {
	t.Parallel()
	s := &Size{TargetValue: decimal.NewFromInt(10000)}
	o, err := s.SizeSignal(newSignal(direction.Long, 567))
	require.NoError(t, err)
	require.NotNil(t, o)
	// floor(10000 / 567) = 17
	assert.True(t, o.Quantity.Equal(decimal.NewFromInt(17)))
}

func TestSizeSignalNoOrder(t *testing.T) {
	t.Parallel()
	s := &Size{TargetValue: decimal.NewFromInt(10000)}

	o, err := s.SizeSignal(newSignal(direction.Flat, 567))
	require.NoError(t, err)
	assert.Nil(t, o)

	o, err = s.SizeSignal(newSignal(direction.Long, 0))
	require.NoError(t, err)
	assert.Nil(t, o)

	o, err = s.SizeSignal(newSignal(direction.Long, 20000))
	require.NoError(t, err)
	assert.Nil(t, o)
}
