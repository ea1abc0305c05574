package model

import (
	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
)

// ClaimSnapshot is the immutable view of an insurance claim carried by a single
// assessment call. Values are taken as given: negative amounts or counts are not
// rejected here, the rule table is evaluated on them as-is.
type ClaimSnapshot struct {
	EstimatedAmount     decimal.Decimal
	ClaimID             string
	PolicyNumber        string
	ClaimType           string
	IncidentDate        string
	PreviousClaimsCount int
}

// RiskVerdict is the outcome of assessing one ClaimSnapshot.
type RiskVerdict struct {
	RiskScore             decimal.Decimal
	RiskLevel             valueobject.RiskLevel
	ClaimID               string
	AssessmentReason      string
	RequiresInvestigation bool
}

// RiskUpdate is one progress message of a streaming assessment.
type RiskUpdate struct {
	CurrentScore decimal.Decimal
	Message      string
	Stage        int
}
