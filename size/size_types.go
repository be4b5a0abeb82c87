package size

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoSizingGuidance is raised when neither a default quantity nor a
// target value is configured
var ErrNoSizingGuidance = errors.New("sizer requires a default quantity or target value")

// Size converts signals into order quantities. When DefaultQuantity is set
// every order trades that fixed amount; otherwise the quantity is the
// whole number of units TargetValue buys at the signal price
type Size struct {
	DefaultQuantity decimal.Decimal
	TargetValue     decimal.Decimal
}
