package direction

import "github.com/shopspring/decimal"

// Direction is the side of a position or transaction, derived from the sign
// of its quantity rather than cached
type Direction int

const (
	// Short represents negative quantity exposure
	Short Direction = -1
	// Flat represents no exposure
	Flat Direction = 0
	// Long represents positive quantity exposure
	Long Direction = 1
)

// FromQuantity derives the direction from a signed quantity
func FromQuantity(q decimal.Decimal) Direction {
	switch {
	case q.IsPositive():
		return Long
	case q.IsNegative():
		return Short
	}
	return Flat
}

// Sign returns the direction as a decimal multiplier
func (d Direction) Sign() decimal.Decimal {
	return decimal.NewFromInt(int64(d))
}

// String implements the stringer interface
func (d Direction) String() string {
	switch d {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	}
	return "FLAT"
}
