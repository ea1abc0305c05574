package usecase_test

import (
	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/dto"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
)

// --- Mock implementations ---

type panickingAssessor struct{}

func (panickingAssessor) Assess(model.ClaimSnapshot) model.RiskVerdict {
	panic("rule table corrupted")
}

type panickingEstimator struct{}

func (panickingEstimator) Estimate(decimal.Decimal, int) decimal.Decimal {
	panic("estimator exploded")
}

// --- Helpers ---

func claimRequest(amount float64, previousClaims int32) dto.AssessClaimRequest {
	return dto.AssessClaimRequest{
		ClaimID:             "CLM-42",
		PolicyNumber:        "POL-7",
		ClaimType:           "AUTO",
		IncidentDate:        "2026-02-11",
		EstimatedAmount:     amount,
		PreviousClaimsCount: previousClaims,
	}
}
