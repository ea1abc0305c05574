package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/service"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
)

func snapshot(amount string, previousClaims int) model.ClaimSnapshot {
	return model.ClaimSnapshot{
		ClaimID:             "CLM-001",
		PolicyNumber:        "POL-123",
		EstimatedAmount:     decimal.RequireFromString(amount),
		ClaimType:           "AUTO",
		IncidentDate:        "2026-01-15",
		PreviousClaimsCount: previousClaims,
	}
}

func TestRuleEngine_Assess(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		previousClaims int
		level          valueobject.RiskLevel
		score          string
		reason         string
		investigate    bool
	}{
		{"scenario A critical amount", "120000", 0, valueobject.RiskLevelCritical, "0.95", service.ReasonExtremelyHighAmount, true},
		{"critical ignores previous claims", "100000.01", 9, valueobject.RiskLevelCritical, "0.95", service.ReasonExtremelyHighAmount, true},
		{"scenario B high amount", "60000", 1, valueobject.RiskLevelHigh, "0.80", service.ReasonHighAmount, true},
		{"exactly 100000 is high", "100000", 0, valueobject.RiskLevelHigh, "0.80", service.ReasonHighAmount, true},
		{"high ignores previous claims", "50000.01", 7, valueobject.RiskLevelHigh, "0.80", service.ReasonHighAmount, true},
		{"scenario C multiple previous claims", "5000", 5, valueobject.RiskLevelMedium, "0.60", service.ReasonMultipleClaims, false},
		{"exactly 50000 with many claims", "50000", 4, valueobject.RiskLevelMedium, "0.60", service.ReasonMultipleClaims, false},
		{"scenario D moderate amount", "20000", 2, valueobject.RiskLevelMedium, "0.40", service.ReasonModerateAmount, false},
		{"exactly 50000 few claims", "50000", 3, valueobject.RiskLevelMedium, "0.40", service.ReasonModerateAmount, false},
		{"exactly 10000 is standard", "10000", 3, valueobject.RiskLevelLow, "0.10", service.ReasonStandard, false},
		{"zero amount", "0", 0, valueobject.RiskLevelLow, "0.10", service.ReasonStandard, false},
		{"negative amount evaluated as given", "-500", 0, valueobject.RiskLevelLow, "0.10", service.ReasonStandard, false},
	}

	engine := service.NewRuleEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := engine.Assess(snapshot(tt.amount, tt.previousClaims))

			assert.Equal(t, "CLM-001", verdict.ClaimID)
			assert.True(t, tt.level.Equal(verdict.RiskLevel), "expected %s, got %s", tt.level, verdict.RiskLevel)
			assert.True(t, decimal.RequireFromString(tt.score).Equal(verdict.RiskScore),
				"expected score %s, got %s", tt.score, verdict.RiskScore)
			assert.Equal(t, tt.reason, verdict.AssessmentReason)
			assert.Equal(t, tt.investigate, verdict.RequiresInvestigation)
		})
	}
}

func TestRuleEngine_InvestigationMatchesSeverity(t *testing.T) {
	engine := service.NewRuleEngine()
	amounts := []string{"-1", "0", "9999.99", "10000", "10000.01", "35000", "50000", "50000.01", "99999", "100000", "100001", "1000000"}

	for _, amount := range amounts {
		for previous := 0; previous <= 6; previous++ {
			verdict := engine.Assess(snapshot(amount, previous))
			assert.Equal(t, verdict.RiskLevel.AtLeast(valueobject.RiskLevelHigh), verdict.RequiresInvestigation,
				"amount=%s previous=%d level=%s", amount, previous, verdict.RiskLevel)
		}
	}
}

func TestRuleEngine_Deterministic(t *testing.T) {
	engine := service.NewRuleEngine()
	s := snapshot("42000", 2)

	first := engine.Assess(s)
	second := engine.Assess(s)

	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.True(t, first.RiskScore.Equal(second.RiskScore))
	assert.Equal(t, first.AssessmentReason, second.AssessmentReason)
}
