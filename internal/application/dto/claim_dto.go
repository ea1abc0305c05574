package dto

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
)

// AssessClaimRequest is the input DTO shared by the unary and streaming assessments.
type AssessClaimRequest struct {
	ClaimID             string  `json:"claim_id"`
	PolicyNumber        string  `json:"policy_number"`
	ClaimType           string  `json:"claim_type"`
	IncidentDate        string  `json:"incident_date"`
	EstimatedAmount     float64 `json:"estimated_amount"`
	PreviousClaimsCount int32   `json:"previous_claims_count"`
}

// ToSnapshot maps the request onto the domain snapshot.
func (r AssessClaimRequest) ToSnapshot() model.ClaimSnapshot {
	return model.ClaimSnapshot{
		ClaimID:             r.ClaimID,
		PolicyNumber:        r.PolicyNumber,
		EstimatedAmount:     amountFromFloat(r.EstimatedAmount),
		ClaimType:           r.ClaimType,
		IncidentDate:        r.IncidentDate,
		PreviousClaimsCount: int(r.PreviousClaimsCount),
	}
}

// amountFromFloat converts a wire amount to a decimal. Infinities saturate to
// the largest finite double of the same sign and NaN counts as zero, so every
// double maps to a verdict.
func amountFromFloat(f float64) decimal.Decimal {
	switch {
	case math.IsNaN(f):
		return decimal.Zero
	case math.IsInf(f, 1):
		f = math.MaxFloat64
	case math.IsInf(f, -1):
		f = -math.MaxFloat64
	}
	return decimal.NewFromFloat(f)
}

// RiskVerdictResponse is the output DTO of the unary assessment.
type RiskVerdictResponse struct {
	ClaimID               string  `json:"claim_id"`
	RiskLevel             string  `json:"risk_level"`
	RiskLevelNumber       int32   `json:"-"`
	AssessmentReason      string  `json:"assessment_reason"`
	RiskScore             float64 `json:"risk_score"`
	RequiresInvestigation bool    `json:"requires_investigation"`
}

// FromVerdict maps a domain verdict to the response DTO.
func FromVerdict(v model.RiskVerdict) RiskVerdictResponse {
	return RiskVerdictResponse{
		ClaimID:               v.ClaimID,
		RiskLevel:             v.RiskLevel.String(),
		RiskLevelNumber:       v.RiskLevel.Number(),
		RiskScore:             v.RiskScore.InexactFloat64(),
		AssessmentReason:      v.AssessmentReason,
		RequiresInvestigation: v.RequiresInvestigation,
	}
}

// RiskUpdateResponse is one output DTO of the streaming assessment.
type RiskUpdateResponse struct {
	Message      string  `json:"message"`
	CurrentScore float64 `json:"current_score"`
	Stage        int     `json:"stage"`
}

// FromUpdate maps a domain update to the response DTO.
func FromUpdate(u model.RiskUpdate) RiskUpdateResponse {
	return RiskUpdateResponse{
		Message:      u.Message,
		CurrentScore: u.CurrentScore.InexactFloat64(),
		Stage:        u.Stage,
	}
}
