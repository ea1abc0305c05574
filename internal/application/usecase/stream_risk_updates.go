package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/dto"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/service"
)

// StageCount is the number of updates in a completed stream.
const StageCount = 3

var initialScore = decimal.RequireFromString("0.10")

// UpdateSender delivers one update to the caller. It is invoked sequentially,
// in stage order, from the goroutine running Execute.
type UpdateSender func(dto.RiskUpdateResponse) error

// StreamRiskUpdates is the use case narrating a staged risk analysis as an
// ordered sequence of updates.
type StreamRiskUpdates struct {
	assessor   service.Assessor
	estimator  service.ScoreEstimator
	stageDelay time.Duration
}

// NewStreamRiskUpdates creates a new StreamRiskUpdates use case.
// A non-positive stageDelay disables the wait between stages.
func NewStreamRiskUpdates(
	assessor service.Assessor,
	estimator service.ScoreEstimator,
	stageDelay time.Duration,
) *StreamRiskUpdates {
	return &StreamRiskUpdates{
		assessor:   assessor,
		estimator:  estimator,
		stageDelay: stageDelay,
	}
}

// Execute sends the three stage updates through send and returns the terminal
// state of the stream. A cancelled ctx yields StreamCancelled and an error
// wrapping ErrStreamCancelled; a computation fault yields StreamFailed and an
// error wrapping ErrInternal. No update is sent after either.
func (uc *StreamRiskUpdates) Execute(ctx context.Context, req dto.AssessClaimRequest, send UpdateSender) (model.StreamState, error) {
	snapshot := req.ToSnapshot()
	stages := []func(model.ClaimSnapshot) model.RiskUpdate{
		uc.validationStage,
		uc.patternStage,
		uc.verdictStage,
	}

	state := model.StreamAwaitingStage1
	for i, build := range stages {
		stage := i + 1

		if i > 0 {
			if err := uc.wait(ctx); err != nil {
				return model.StreamCancelled, fmt.Errorf("%w: claim %s before stage %d: %w", ErrStreamCancelled, snapshot.ClaimID, stage, err)
			}
		} else if err := ctx.Err(); err != nil {
			return model.StreamCancelled, fmt.Errorf("%w: claim %s before stage %d: %w", ErrStreamCancelled, snapshot.ClaimID, stage, err)
		}

		update, err := guard(func() model.RiskUpdate { return build(snapshot) })
		if err != nil {
			return model.StreamFailed, fmt.Errorf("stage %d for claim %s: %w", stage, snapshot.ClaimID, err)
		}

		if err := send(dto.FromUpdate(update)); err != nil {
			if ctx.Err() != nil {
				return model.StreamCancelled, fmt.Errorf("%w: claim %s at stage %d: %w", ErrStreamCancelled, snapshot.ClaimID, stage, err)
			}
			return model.StreamFailed, fmt.Errorf("failed to send stage %d update for claim %s: %w", stage, snapshot.ClaimID, err)
		}
		state = state.Advance()
	}

	return state, nil
}

// wait suspends for the stage delay or until ctx ends, whichever comes first.
func (uc *StreamRiskUpdates) wait(ctx context.Context) error {
	if uc.stageDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(uc.stageDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (uc *StreamRiskUpdates) validationStage(s model.ClaimSnapshot) model.RiskUpdate {
	return model.RiskUpdate{
		Stage: 1,
		Message: fmt.Sprintf(
			"[Stage 1/3] Claim %s received. Validating data integrity and cross-referencing policy records ...",
			s.ClaimID,
		),
		CurrentScore: initialScore,
	}
}

func (uc *StreamRiskUpdates) patternStage(s model.ClaimSnapshot) model.RiskUpdate {
	score := uc.estimator.Estimate(s.EstimatedAmount, s.PreviousClaimsCount)
	return model.RiskUpdate{
		Stage: 2,
		Message: fmt.Sprintf(
			"[Stage 2/3] Claim %s - analysing historical patterns. Amount: %s | Previous claims: %d | Intermediate score: %s",
			s.ClaimID, s.EstimatedAmount.StringFixed(2), s.PreviousClaimsCount, score.StringFixed(2),
		),
		CurrentScore: score,
	}
}

func (uc *StreamRiskUpdates) verdictStage(s model.ClaimSnapshot) model.RiskUpdate {
	verdict := uc.assessor.Assess(s)
	return model.RiskUpdate{
		Stage: 3,
		Message: fmt.Sprintf(
			"[Stage 3/3] Claim %s - analysis complete. Final risk level: %s | Score: %s | Requires investigation: %t",
			s.ClaimID, verdict.RiskLevel, verdict.RiskScore.StringFixed(2), verdict.RequiresInvestigation,
		),
		CurrentScore: verdict.RiskScore,
	}
}
