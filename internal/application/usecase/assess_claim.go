package usecase

import (
	"context"
	"fmt"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/dto"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/service"
)

// AssessClaim is the use case for the single-shot fraud risk assessment.
type AssessClaim struct {
	assessor service.Assessor
}

// NewAssessClaim creates a new AssessClaim use case.
func NewAssessClaim(assessor service.Assessor) *AssessClaim {
	return &AssessClaim{assessor: assessor}
}

// Execute evaluates the claim and returns its verdict. Nothing is stored.
func (uc *AssessClaim) Execute(_ context.Context, req dto.AssessClaimRequest) (dto.RiskVerdictResponse, error) {
	snapshot := req.ToSnapshot()

	verdict, err := guard(func() model.RiskVerdict {
		return uc.assessor.Assess(snapshot)
	})
	if err != nil {
		return dto.RiskVerdictResponse{}, fmt.Errorf("failed to assess claim %s: %w", req.ClaimID, err)
	}

	return dto.FromVerdict(verdict), nil
}
