// Package transaction defines the immutable record of an executed order, as
// consumed by the position ledger
package transaction

import (
	"fmt"
	"time"

	"github.com/quantave/backtester/direction"
	"github.com/shopspring/decimal"
)

// Transaction is a single fill: the asset, signed quantity, execution price
// and commission for one executed order. It is produced once by the broker
// and never mutated
type Transaction struct {
	Asset      string
	Quantity   decimal.Decimal
	Time       time.Time
	Price      decimal.Decimal
	OrderID    string
	Commission decimal.Decimal
}

// New returns a transaction record for an executed order
func New(asset string, quantity decimal.Decimal, dt time.Time, price decimal.Decimal, orderID string, commission decimal.Decimal) *Transaction {
	return &Transaction{
		Asset:      asset,
		Quantity:   quantity,
		Time:       dt,
		Price:      price,
		OrderID:    orderID,
		Commission: commission,
	}
}

// Direction derives the side of the transaction from its quantity sign
func (t *Transaction) Direction() direction.Direction {
	return direction.FromQuantity(t.Quantity)
}

// ConsiderationWithoutCommission is price times quantity, signed
func (t *Transaction) ConsiderationWithoutCommission() decimal.Decimal {
	return t.Price.Mul(t.Quantity)
}

// ConsiderationWithCommission is the signed consideration plus the
// commission charge
func (t *Transaction) ConsiderationWithCommission() decimal.Decimal {
	return t.ConsiderationWithoutCommission().Add(t.Commission)
}

// String implements the stringer interface
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction(asset=%s, quantity=%v, dt=%v, price=%v, order_id=%s)",
		t.Asset, t.Quantity, t.Time, t.Price, t.OrderID)
}
