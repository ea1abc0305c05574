package service

import (
	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
)

// Assessor produces the final verdict for a claim.
// RuleEngine is the production implementation.
type Assessor interface {
	Assess(snapshot model.ClaimSnapshot) model.RiskVerdict
}

// ScoreEstimator produces the partial score reported while a stream is in progress.
// Estimator is the production implementation.
type ScoreEstimator interface {
	Estimate(estimatedAmount decimal.Decimal, previousClaimsCount int) decimal.Decimal
}
