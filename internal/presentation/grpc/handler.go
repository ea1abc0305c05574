package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/dto"
	"github.com/salim-lakhal/CSC-8603-project/internal/application/usecase"
	"github.com/salim-lakhal/CSC-8603-project/pkg/observability"
)

// Compile-time assertion that FraudServiceHandler implements FraudDetectionServiceServer.
var _ FraudDetectionServiceServer = (*FraudServiceHandler)(nil)

// FraudServiceHandler implements the gRPC FraudDetectionServiceServer interface.
type FraudServiceHandler struct {
	UnimplementedFraudDetectionServiceServer
	assessClaim   *usecase.AssessClaim
	streamUpdates *usecase.StreamRiskUpdates
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewFraudServiceHandler creates a new gRPC handler. metrics may be nil.
func NewFraudServiceHandler(
	assessClaim *usecase.AssessClaim,
	streamUpdates *usecase.StreamRiskUpdates,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *FraudServiceHandler {
	return &FraudServiceHandler{
		assessClaim:   assessClaim,
		streamUpdates: streamUpdates,
		metrics:       metrics,
		logger:        logger,
	}
}

// AssessFraudRisk handles the unary fraud risk assessment.
func (h *FraudServiceHandler) AssessFraudRisk(ctx context.Context, req *FraudAssessmentRequest) (*FraudAssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	logger := h.callLogger(ctx, "AssessFraudRisk", req.ClaimID)
	logger.Info("assessing fraud risk",
		slog.String("policy_number", req.PolicyNumber),
		slog.Float64("estimated_amount", req.EstimatedAmount),
		slog.String("claim_type", req.ClaimType),
		slog.String("incident_date", req.IncidentDate),
		slog.Int("previous_claims", int(req.PreviousClaimsCount)),
	)

	result, err := h.assessClaim.Execute(ctx, toClaimRequest(req))
	if err != nil {
		logger.Error("failed to assess fraud risk", slog.String("error", err.Error()))
		return nil, status.Errorf(codes.Internal, "Internal error during fraud assessment: %v", err)
	}

	h.metrics.RecordVerdict(ctx, result.RiskLevel)
	logger.Info("fraud risk assessed",
		slog.String("risk_level", result.RiskLevel),
		slog.Float64("risk_score", result.RiskScore),
		slog.Bool("requires_investigation", result.RequiresInvestigation),
	)

	return &FraudAssessmentResponse{
		ClaimID:               result.ClaimID,
		RiskLevel:             result.RiskLevelNumber,
		RiskScore:             result.RiskScore,
		AssessmentReason:      result.AssessmentReason,
		RequiresInvestigation: result.RequiresInvestigation,
	}, nil
}

// StreamRiskUpdates handles the server-streaming staged risk analysis.
func (h *FraudServiceHandler) StreamRiskUpdates(req *FraudAssessmentRequest, stream RiskUpdateServerStream) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}

	ctx := stream.Context()
	logger := h.callLogger(ctx, "StreamRiskUpdates", req.ClaimID)
	logger.Info("starting risk update stream")

	state, err := h.streamUpdates.Execute(ctx, toClaimRequest(req), func(u dto.RiskUpdateResponse) error {
		logger.Debug("sending risk update",
			slog.Int("stage", u.Stage),
			slog.Float64("current_score", u.CurrentScore),
		)
		return stream.Send(&RiskUpdate{
			Message:      u.Message,
			CurrentScore: u.CurrentScore,
		})
	})
	h.metrics.RecordStreamOutcome(ctx, state.String())

	switch {
	case err == nil:
		logger.Info("risk update stream completed", slog.String("state", state.String()))
		return nil
	case errors.Is(err, usecase.ErrStreamCancelled):
		logger.Warn("risk update stream interrupted",
			slog.String("state", state.String()),
			slog.String("error", err.Error()),
		)
		return status.Errorf(codes.Canceled, "Risk update stream was interrupted for claim: %s", req.ClaimID)
	default:
		logger.Error("risk update stream failed",
			slog.String("state", state.String()),
			slog.String("error", err.Error()),
		)
		return status.Errorf(codes.Internal, "Internal error during risk streaming: %v", err)
	}
}

func (h *FraudServiceHandler) callLogger(ctx context.Context, method, claimID string) *slog.Logger {
	return h.logger.With(
		slog.String("method", method),
		slog.String("claim_id", claimID),
		slog.String("request_id", RequestIDFromContext(ctx)),
	)
}

func toClaimRequest(req *FraudAssessmentRequest) dto.AssessClaimRequest {
	return dto.AssessClaimRequest{
		ClaimID:             req.ClaimID,
		PolicyNumber:        req.PolicyNumber,
		ClaimType:           req.ClaimType,
		IncidentDate:        req.IncidentDate,
		EstimatedAmount:     req.EstimatedAmount,
		PreviousClaimsCount: req.PreviousClaimsCount,
	}
}
