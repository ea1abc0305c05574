package service

import (
	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
)

// Assessment reasons, one per rule.
const (
	ReasonExtremelyHighAmount = "Extremely high claim amount"
	ReasonHighAmount          = "High claim amount"
	ReasonMultipleClaims      = "Multiple previous claims"
	ReasonModerateAmount      = "Moderate claim amount"
	ReasonStandard            = "Standard claim"
)

var (
	criticalAmountThreshold = decimal.NewFromInt(100000)
	highAmountThreshold     = decimal.NewFromInt(50000)
	moderateAmountThreshold = decimal.NewFromInt(10000)
)

// previousClaimsThreshold is the count above which a claimant is flagged.
const previousClaimsThreshold = 3

// riskRule is one row of the rule table.
type riskRule struct {
	matches func(s model.ClaimSnapshot) bool
	level   valueobject.RiskLevel
	score   decimal.Decimal
	reason  string
}

// investigationLevel is the lowest level that requires manual investigation.
var investigationLevel = valueobject.RiskLevelHigh

// RuleEngine is a domain service that assesses a claim against a fixed,
// ordered rule table. The first matching rule wins.
type RuleEngine struct {
	rules    []riskRule
	fallback riskRule
}

// NewRuleEngine creates a RuleEngine with the standard claim rule table.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{
		rules: []riskRule{
			{
				matches: func(s model.ClaimSnapshot) bool { return s.EstimatedAmount.GreaterThan(criticalAmountThreshold) },
				level:   valueobject.RiskLevelCritical,
				score:   decimal.RequireFromString("0.95"),
				reason:  ReasonExtremelyHighAmount,
			},
			{
				matches: func(s model.ClaimSnapshot) bool { return s.EstimatedAmount.GreaterThan(highAmountThreshold) },
				level:   valueobject.RiskLevelHigh,
				score:   decimal.RequireFromString("0.80"),
				reason:  ReasonHighAmount,
			},
			{
				matches: func(s model.ClaimSnapshot) bool { return s.PreviousClaimsCount > previousClaimsThreshold },
				level:   valueobject.RiskLevelMedium,
				score:   decimal.RequireFromString("0.60"),
				reason:  ReasonMultipleClaims,
			},
			{
				matches: func(s model.ClaimSnapshot) bool { return s.EstimatedAmount.GreaterThan(moderateAmountThreshold) },
				level:   valueobject.RiskLevelMedium,
				score:   decimal.RequireFromString("0.40"),
				reason:  ReasonModerateAmount,
			},
		},
		fallback: riskRule{
			level:  valueobject.RiskLevelLow,
			score:  decimal.RequireFromString("0.10"),
			reason: ReasonStandard,
		},
	}
}

// Assess evaluates the snapshot and returns its verdict. It is pure and total.
func (e *RuleEngine) Assess(snapshot model.ClaimSnapshot) model.RiskVerdict {
	rule := e.fallback
	for _, r := range e.rules {
		if r.matches(snapshot) {
			rule = r
			break
		}
	}

	return model.RiskVerdict{
		ClaimID:               snapshot.ClaimID,
		RiskLevel:             rule.level,
		RiskScore:             rule.score,
		AssessmentReason:      rule.reason,
		RequiresInvestigation: rule.level.AtLeast(investigationLevel),
	}
}
