package position

import (
	"testing"
	"time"

	"github.com/quantave/backtester/direction"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTxn(asset string, quantity, price, commission float64, dt time.Time) *transaction.Transaction {
	return transaction.New(asset,
		decimal.NewFromFloat(quantity),
		dt,
		decimal.NewFromFloat(price),
		"order-test",
		decimal.NewFromFloat(commission))
}

func TestTransactErrors(t *testing.T) {
	t.Parallel()
	p := New("EQ:ABC")
	err := p.Transact(nil)
	assert.ErrorIs(t, err, ErrNilTransaction)

	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	err = p.Transact(mustTxn("EQ:XYZ", 100, 10, 0, dt))
	assert.ErrorIs(t, err, ErrAssetMismatch)
}

func TestTransactZeroQuantityNoOp(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 950, 0, dt)))
	before := *p
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 0, 1234, 99, dt.Add(time.Hour))))
	assert.Equal(t, before, *p)
}

func TestTransactBlendsBookCost(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 950, 0, dt)))
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 960, 0, dt.Add(time.Minute))))

	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(200)))
	assert.True(t, p.BookCostPerUnit.Equal(decimal.NewFromInt(955)))
	assert.True(t, p.BookCost().Equal(decimal.NewFromInt(191000)))
	assert.Equal(t, direction.Long, p.Direction())
}

func TestTransactDirectionFlip(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", -100, 700, 0, dt)))
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 175, 873, 0, dt.Add(time.Minute))))

	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(75)))
	assert.True(t, p.BookCostPerUnit.Equal(decimal.NewFromInt(873)))
	assert.True(t, p.RealisedPnL.Equal(decimal.NewFromInt(-17300)))
	assert.Equal(t, direction.Long, p.Direction())
}

func TestTransactPartialClose(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 50, 0, dt)))
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", -40, 60, 0, dt.Add(time.Minute))))

	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(60)))
	assert.True(t, p.BookCostPerUnit.Equal(decimal.NewFromInt(50)))
	assert.True(t, p.RealisedPnL.Equal(decimal.NewFromInt(400)))
}

func TestTransactRoundTrip(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 567, 15.78, dt)))

	// Commission amortised across the full holding
	assert.True(t, p.BookCostPerUnit.Equal(decimal.NewFromFloat(567.1578)))
	assert.True(t, p.BookCost().Equal(decimal.NewFromFloat(56715.78)))

	require.NoError(t, p.Transact(mustTxn("EQ:ABC", -100, 567.1578, 0, dt.Add(time.Minute))))
	assert.True(t, p.Quantity.IsZero())
	assert.True(t, p.BookCostPerUnit.IsZero())
	assert.True(t, p.RealisedPnL.IsZero())
	assert.Equal(t, direction.Flat, p.Direction())
}

func TestFullCloseWithCommission(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 50, 0, dt)))
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", -100, 55, 7, dt.Add(time.Minute))))

	assert.True(t, p.Quantity.IsZero())
	assert.True(t, p.RealisedPnL.Equal(decimal.NewFromInt(493)))
}

func TestShortRealisedGain(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", -100, 80, 0, dt)))
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 70, 0, dt.Add(time.Minute))))

	assert.True(t, p.RealisedPnL.Equal(decimal.NewFromInt(1000)))
}

func TestFromTransaction(t *testing.T) {
	t.Parallel()
	_, err := FromTransaction(nil)
	assert.ErrorIs(t, err, ErrNilTransaction)

	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p, err := FromTransaction(mustTxn("EQ:ABC", 100, 950, 0, dt))
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.BookCostPerUnit.Equal(decimal.NewFromInt(950)))
	assert.True(t, p.CurrentPrice.Equal(decimal.NewFromInt(950)))
	assert.Equal(t, dt, p.CurrentTime)
}

func TestUpdateCurrentPrice(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 950, 0, dt)))

	err := p.UpdateCurrentPrice(decimal.NewFromInt(-1), dt.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNegativePrice)

	err = p.UpdateCurrentPrice(decimal.NewFromInt(960), dt.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrTimeOrder)

	require.NoError(t, p.UpdateCurrentPrice(decimal.NewFromInt(960), dt.Add(time.Hour)))
	assert.True(t, p.CurrentPrice.Equal(decimal.NewFromInt(960)))
	assert.True(t, p.MarketValue().Equal(decimal.NewFromInt(96000)))
	assert.True(t, p.UnrealisedGain().Equal(decimal.NewFromInt(1000)))
}

func TestUnrealisedPercentageGain(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	assert.True(t, p.UnrealisedPercentageGain().IsZero())

	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 100, 0, dt)))
	require.NoError(t, p.UpdateCurrentPrice(decimal.NewFromInt(110), dt.Add(time.Hour)))
	assert.True(t, p.UnrealisedPercentageGain().Equal(decimal.NewFromInt(10)))

	short := New("EQ:DEF")
	require.NoError(t, short.Transact(mustTxn("EQ:DEF", -100, 100, 0, dt)))
	require.NoError(t, short.UpdateCurrentPrice(decimal.NewFromInt(90), dt.Add(time.Hour)))
	assert.True(t, short.UnrealisedPercentageGain().Equal(decimal.NewFromInt(10)))
}

func TestApply(t *testing.T) {
	t.Parallel()
	dt := time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)
	p := New("EQ:ABC")
	require.NoError(t, p.Transact(mustTxn("EQ:ABC", 100, 950, 0, dt)))

	badPrice := decimal.NewFromInt(-5)
	err := p.Apply(Update{Price: &badPrice})
	assert.ErrorIs(t, err, ErrNegativePrice)

	early := dt.Add(-time.Hour)
	err = p.Apply(Update{Time: &early})
	assert.ErrorIs(t, err, ErrTimeOrder)

	price := decimal.NewFromInt(975)
	later := dt.Add(time.Hour)
	require.NoError(t, p.Apply(Update{Price: &price, Time: &later}))
	assert.True(t, p.CurrentPrice.Equal(price))
	assert.Equal(t, later, p.CurrentTime)
}
