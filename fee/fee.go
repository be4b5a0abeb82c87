package fee

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalcCommission returns zero commission
func (z Zero) CalcCommission(_ string, _, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// CalcTax returns zero tax
func (z Zero) CalcTax(_ string, _, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// CalcTotalCost returns zero total trading cost
func (z Zero) CalcTotalCost(_ string, _, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// NewPercent validates the rates and returns a percentage fee model
func NewPercent(commissionPct, taxPct decimal.Decimal) (*Percent, error) {
	if commissionPct.IsNegative() {
		return nil, fmt.Errorf("commission %w: %v", ErrNegativeRate, commissionPct)
	}
	if taxPct.IsNegative() {
		return nil, fmt.Errorf("tax %w: %v", ErrNegativeRate, taxPct)
	}
	return &Percent{commissionPct: commissionPct, taxPct: taxPct}, nil
}

// CalcCommission returns the percentage commission on the absolute
// consideration
func (p *Percent) CalcCommission(_ string, _, consideration decimal.Decimal) decimal.Decimal {
	return p.commissionPct.Mul(consideration.Abs())
}

// CalcTax returns the percentage tax on the absolute consideration
func (p *Percent) CalcTax(_ string, _, consideration decimal.Decimal) decimal.Decimal {
	return p.taxPct.Mul(consideration.Abs())
}

// CalcTotalCost returns the summed commission and tax for the trade
func (p *Percent) CalcTotalCost(asset string, quantity, consideration decimal.Decimal) decimal.Decimal {
	commission := p.CalcCommission(asset, quantity, consideration)
	tax := p.CalcTax(asset, quantity, consideration)
	return commission.Add(tax)
}
