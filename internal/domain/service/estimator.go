package service

import (
	"github.com/shopspring/decimal"
)

var (
	amountCeiling      = decimal.NewFromInt(100000)
	amountWeight       = decimal.RequireFromString("0.70")
	perClaimWeight     = decimal.RequireFromString("0.06")
	frequencySignalCap = decimal.RequireFromString("0.30")
	one                = decimal.NewFromInt(1)
)

// Estimator computes the intermediate score reported in the middle of a risk
// stream. It is a progress indicator on its own curve and is not a preview of
// the final verdict.
type Estimator struct{}

// NewEstimator creates a new Estimator instance.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate combines an amount signal (up to 0.70) and a claim frequency signal
// (up to 0.30) and rounds the sum to two decimal places, half away from zero.
// The result is clamped to [0, 1].
func (e *Estimator) Estimate(estimatedAmount decimal.Decimal, previousClaimsCount int) decimal.Decimal {
	amountSignal := decimal.Min(estimatedAmount.Div(amountCeiling), one).Mul(amountWeight)

	extraClaims := previousClaimsCount - 1
	if extraClaims < 0 {
		extraClaims = 0
	}
	frequencySignal := decimal.Min(decimal.NewFromInt(int64(extraClaims)).Mul(perClaimWeight), frequencySignalCap)

	score := amountSignal.Add(frequencySignal).Round(2)

	switch {
	case score.IsNegative():
		return decimal.Zero
	case score.GreaterThan(one):
		return one
	default:
		return score
	}
}
