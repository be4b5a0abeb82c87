package portfolio

import (
	"testing"
	"time"

	"github.com/quantave/backtester/common"
	"github.com/quantave/backtester/ledger"
	"github.com/quantave/backtester/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)

func txn(asset string, quantity, price, commission float64, dt time.Time) *transaction.Transaction {
	return transaction.New(asset,
		decimal.NewFromFloat(quantity),
		dt,
		decimal.NewFromFloat(price),
		"order-test",
		decimal.NewFromFloat(commission))
}

func TestSubscribeFunds(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)

	err := p.SubscribeFunds(start.Add(-time.Hour), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, common.ErrTimeOrder)

	err = p.SubscribeFunds(start, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, common.ErrNegativeAmount)

	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(100000)))
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(100000)))

	history := p.History()
	require.Len(t, history, 1)
	assert.Equal(t, Subscription, history[0].Kind)
	assert.Equal(t, "SUBSCRIPTION", history[0].Description)
	assert.True(t, history[0].Credit.Equal(decimal.NewFromInt(100000)))
	assert.True(t, history[0].Balance.Equal(decimal.NewFromInt(100000)))
}

func TestWithdrawFunds(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(1000)))

	err := p.WithdrawFunds(start, decimal.NewFromInt(2000))
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	err = p.WithdrawFunds(start, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, common.ErrNegativeAmount)

	require.NoError(t, p.WithdrawFunds(start.Add(time.Hour), decimal.NewFromInt(400)))
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(600)))

	history := p.History()
	require.Len(t, history, 2)
	assert.Equal(t, Withdrawal, history[1].Kind)
	assert.True(t, history[1].Debit.Equal(decimal.NewFromInt(400)))
	assert.True(t, history[1].Balance.Equal(decimal.NewFromInt(600)))
}

func TestTransactAsset(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(100000)))

	dt := start.Add(14*time.Hour + 30*time.Minute)
	require.NoError(t, p.TransactAsset(txn("EQ:ABC", 100, 567, 15.78, dt)))

	assert.True(t, p.Cash().Equal(decimal.NewFromFloat(43284.22)))
	assert.True(t, p.TotalMarketValue().Equal(decimal.NewFromInt(56700)))
	assert.True(t, p.TotalEquity().Equal(decimal.NewFromFloat(99984.22)))

	history := p.History()
	require.Len(t, history, 2)
	assert.Equal(t, AssetTransaction, history[1].Kind)
	assert.Equal(t, "LONG 100 EQ:ABC 567.00 06/01/2020", history[1].Description)
	assert.True(t, history[1].Debit.Equal(decimal.NewFromFloat(56715.78)))
	assert.True(t, history[1].Balance.Equal(decimal.NewFromFloat(43284.22)))
}

func TestTransactAssetInsufficientCash(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(1000)))

	err := p.TransactAsset(txn("EQ:ABC", 100, 567, 0, start.Add(time.Hour)))
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)
	assert.True(t, p.Cash().Equal(decimal.NewFromInt(1000)))
	assert.Empty(t, p.Assets())
}

func TestTransactAssetSellCredits(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(100000)))

	dt := start.Add(time.Hour)
	require.NoError(t, p.TransactAsset(txn("EQ:ABC", 100, 500, 0, dt)))
	require.NoError(t, p.TransactAsset(txn("EQ:ABC", -50, 520, 0, dt.Add(time.Hour))))

	assert.True(t, p.Cash().Equal(decimal.NewFromInt(76000)))
	assert.True(t, p.Quantity("EQ:ABC").Equal(decimal.NewFromInt(50)))

	history := p.History()
	require.Len(t, history, 3)
	assert.Equal(t, "SHORT 50 EQ:ABC 520.00 06/01/2020", history[2].Description)
	assert.True(t, history[2].Credit.Equal(decimal.NewFromInt(26000)))
}

func TestCreditDividend(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(100000)))

	err := p.CreditDividend(start, "EQ:ABC", decimal.NewFromFloat(0.5))
	assert.ErrorIs(t, err, ledger.ErrPositionNotFound)

	dt := start.Add(time.Hour)
	require.NoError(t, p.TransactAsset(txn("EQ:ABC", 100, 500, 0, dt)))
	require.NoError(t, p.CreditDividend(dt.Add(time.Hour), "EQ:ABC", decimal.NewFromFloat(0.5)))

	assert.True(t, p.Cash().Equal(decimal.NewFromInt(50050)))
	history := p.History()
	assert.Equal(t, Dividend, history[len(history)-1].Kind)
	assert.Equal(t, "DIVIDEND EQ:ABC", history[len(history)-1].Description)
}

func TestUpdateMarketValueOfAsset(t *testing.T) {
	t.Parallel()
	p := New("port-1", "Test", "USD", start)
	require.NoError(t, p.SubscribeFunds(start, decimal.NewFromInt(100000)))
	dt := start.Add(time.Hour)
	require.NoError(t, p.TransactAsset(txn("EQ:ABC", 100, 500, 0, dt)))

	err := p.UpdateMarketValueOfAsset("EQ:ABC", decimal.NewFromInt(510), start.Add(-time.Hour))
	assert.ErrorIs(t, err, common.ErrTimeOrder)

	// Unknown assets are ignored
	require.NoError(t, p.UpdateMarketValueOfAsset("EQ:XYZ", decimal.NewFromInt(1), dt.Add(time.Hour)))

	require.NoError(t, p.UpdateMarketValueOfAsset("EQ:ABC", decimal.NewFromInt(510), dt.Add(time.Hour)))
	holdings := p.Holdings()
	require.Contains(t, holdings, "EQ:ABC")
	assert.True(t, holdings["EQ:ABC"].MarketValue.Equal(decimal.NewFromInt(51000)))
	assert.True(t, holdings["EQ:ABC"].UnrealisedPnL.Equal(decimal.NewFromInt(1000)))
}
