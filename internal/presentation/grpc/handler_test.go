package grpc

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/salim-lakhal/CSC-8603-project/internal/application/usecase"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/model"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/service"
	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
	"github.com/salim-lakhal/CSC-8603-project/pkg/observability"
)

func claimRequest(amount float64, previousClaims int32) *FraudAssessmentRequest {
	return &FraudAssessmentRequest{
		ClaimID:             "CLM-42",
		PolicyNumber:        "POL-7",
		ClaimType:           "AUTO",
		IncidentDate:        "2026-03-14",
		EstimatedAmount:     amount,
		PreviousClaimsCount: previousClaims,
	}
}

func TestAssessFraudRisk_Scenarios(t *testing.T) {
	env := startFraudServer(t, 0, ServerOptions{})

	tests := []struct {
		name          string
		amount        float64
		previous      int32
		level         valueobject.RiskLevel
		score         float64
		reason        string
		investigation bool
	}{
		{"extremely high amount", 120000, 0, valueobject.RiskLevelCritical, 0.95, service.ReasonExtremelyHighAmount, true},
		{"high amount", 60000, 1, valueobject.RiskLevelHigh, 0.80, service.ReasonHighAmount, true},
		{"multiple previous claims", 5000, 5, valueobject.RiskLevelMedium, 0.60, service.ReasonMultipleClaims, false},
		{"moderate amount", 20000, 2, valueobject.RiskLevelMedium, 0.40, service.ReasonModerateAmount, false},
		{"standard claim", 500, 0, valueobject.RiskLevelLow, 0.10, service.ReasonStandard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.client.AssessFraudRisk(context.Background(), claimRequest(tt.amount, tt.previous))
			require.NoError(t, err)

			assert.Equal(t, "CLM-42", resp.ClaimID)
			assert.Equal(t, tt.level.Number(), resp.RiskLevel)
			assert.InDelta(t, tt.score, resp.RiskScore, 1e-9)
			assert.Equal(t, tt.reason, resp.AssessmentReason)
			assert.Equal(t, tt.investigation, resp.RequiresInvestigation)
		})
	}

	body := scrapeMetrics(t, env.metrics)
	assert.Contains(t, body, "fraud_risk_verdicts")
	assert.Contains(t, body, `risk_level="CRITICAL"`)
	assert.Contains(t, body, `code="OK"`)
}

func TestAssessFraudRisk_NonFiniteAmounts(t *testing.T) {
	env := startFraudServer(t, 0, ServerOptions{})

	tests := []struct {
		name   string
		amount float64
		level  valueobject.RiskLevel
		score  float64
	}{
		{"positive infinity", math.Inf(1), valueobject.RiskLevelCritical, 0.95},
		{"negative infinity", math.Inf(-1), valueobject.RiskLevelLow, 0.10},
		{"NaN", math.NaN(), valueobject.RiskLevelLow, 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.client.AssessFraudRisk(context.Background(), claimRequest(tt.amount, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.level.Number(), resp.RiskLevel)
			assert.InDelta(t, tt.score, resp.RiskScore, 1e-9)

			stream, err := env.client.StreamRiskUpdates(context.Background(), claimRequest(tt.amount, 0))
			require.NoError(t, err)

			var updates []*RiskUpdate
			for {
				u, err := stream.Recv()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				updates = append(updates, u)
			}
			require.Len(t, updates, usecase.StageCount)
			assert.InDelta(t, tt.score, updates[2].CurrentScore, 1e-9)
			assert.Contains(t, updates[2].Message, "Final risk level: "+tt.level.String())
		})
	}
}

func TestStreamRiskUpdates_DeliversStagesInOrder(t *testing.T) {
	env := startFraudServer(t, 10*time.Millisecond, ServerOptions{})
	req := claimRequest(40000, 3)

	stream, err := env.client.StreamRiskUpdates(context.Background(), req)
	require.NoError(t, err)

	var updates []*RiskUpdate
	for {
		u, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		updates = append(updates, u)
	}

	require.Len(t, updates, usecase.StageCount)
	for i, u := range updates {
		assert.True(t, strings.HasPrefix(u.Message, fmt.Sprintf("[Stage %d/3] Claim CLM-42", i+1)), u.Message)
	}
	assert.InDelta(t, 0.10, updates[0].CurrentScore, 1e-9)
	assert.InDelta(t, 0.40, updates[1].CurrentScore, 1e-9)
	assert.Contains(t, updates[1].Message, "Intermediate score: 0.40")

	unary, err := env.client.AssessFraudRisk(context.Background(), req)
	require.NoError(t, err)
	level, err := valueobject.RiskLevelFromNumber(unary.RiskLevel)
	require.NoError(t, err)
	assert.InDelta(t, unary.RiskScore, updates[2].CurrentScore, 1e-9)
	assert.Contains(t, updates[2].Message, "Final risk level: "+level.String())
	assert.Contains(t, updates[2].Message, fmt.Sprintf("Requires investigation: %t", unary.RequiresInvestigation))

	body := scrapeMetrics(t, env.metrics)
	assert.Contains(t, body, `state="COMPLETED"`)
}

func TestStreamRiskUpdates_CallerCancellation(t *testing.T) {
	env := startFraudServer(t, 200*time.Millisecond, ServerOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := env.client.StreamRiskUpdates(ctx, claimRequest(120000, 0))
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Contains(t, first.Message, "[Stage 1/3]")
	second, err := stream.Recv()
	require.NoError(t, err)
	assert.Contains(t, second.Message, "[Stage 2/3]")

	cancel()

	_, err = stream.Recv()
	require.Error(t, err)
	assert.Equal(t, codes.Canceled, status.Code(err))

	assert.Eventually(t, func() bool {
		return strings.Contains(scrapeMetrics(t, env.metrics), `state="CANCELLED"`)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStreamRiskUpdates_DeadlineExceeded(t *testing.T) {
	env := startFraudServer(t, time.Second, ServerOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	stream, err := env.client.StreamRiskUpdates(ctx, claimRequest(1000, 0))
	require.NoError(t, err)

	_, err = stream.Recv()
	require.NoError(t, err)
	_, err = stream.Recv()
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

type failingAssessor struct{}

func (failingAssessor) Assess(model.ClaimSnapshot) model.RiskVerdict {
	panic("rule table corrupted")
}

type fixedEstimator struct{}

func (fixedEstimator) Estimate(decimal.Decimal, int) decimal.Decimal {
	return decimal.RequireFromString("0.5")
}

func TestHandler_ComputationFaultsMapToInternal(t *testing.T) {
	handler := NewFraudServiceHandler(
		usecase.NewAssessClaim(failingAssessor{}),
		usecase.NewStreamRiskUpdates(failingAssessor{}, fixedEstimator{}, 0),
		nil,
		newTestLogger(),
	)
	env := startServer(t, func(*observability.Metrics) FraudDetectionServiceServer { return handler }, ServerOptions{})

	_, err := env.client.AssessFraudRisk(context.Background(), claimRequest(1000, 0))
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), "Internal error during fraud assessment: "))

	stream, err := env.client.StreamRiskUpdates(context.Background(), claimRequest(1000, 0))
	require.NoError(t, err)

	// Stages 1 and 2 do not consult the assessor.
	for i := 0; i < 2; i++ {
		_, err = stream.Recv()
		require.NoError(t, err)
	}
	_, err = stream.Recv()
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), "Internal error during risk streaming: "))
}

func TestHandler_NilRequest(t *testing.T) {
	handler := newTestHandler(t, 0, nil)

	_, err := handler.AssessFraudRisk(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = handler.StreamRiskUpdates(nil, nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
