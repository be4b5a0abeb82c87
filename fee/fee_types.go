package fee

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeRate is raised at construction when a percentage rate is
	// below zero
	ErrNegativeRate = errors.New("fee rate cannot be negative")
)

// Model estimates the commission and tax for a trade. Implementations must
// be pure functions of the asset, quantity and consideration
type Model interface {
	CalcCommission(asset string, quantity, consideration decimal.Decimal) decimal.Decimal
	CalcTax(asset string, quantity, consideration decimal.Decimal) decimal.Decimal
	CalcTotalCost(asset string, quantity, consideration decimal.Decimal) decimal.Decimal
}

// Zero charges no commission, fees or taxes. It is the default model for
// the simulated broker
type Zero struct{}

// Percent charges a flat percentage of the consideration for both
// commission and tax. 0-100% is expressed in the range [0.0, 1.0]
type Percent struct {
	commissionPct decimal.Decimal
	taxPct        decimal.Decimal
}
