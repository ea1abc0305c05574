package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salim-lakhal/CSC-8603-project/internal/domain/valueobject"
)

var orderedLevels = []valueobject.RiskLevel{
	valueobject.RiskLevelLow,
	valueobject.RiskLevelMedium,
	valueobject.RiskLevelHigh,
	valueobject.RiskLevelCritical,
}

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "LOW", valueobject.RiskLevelLow.String())
	assert.Equal(t, "MEDIUM", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "HIGH", valueobject.RiskLevelHigh.String())
	assert.Equal(t, "CRITICAL", valueobject.RiskLevelCritical.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"LOW", valueobject.RiskLevelLow, false},
		{"MEDIUM", valueobject.RiskLevelMedium, false},
		{"HIGH", valueobject.RiskLevelHigh, false},
		{"CRITICAL", valueobject.RiskLevelCritical, false},
		{"low", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestRiskLevel_NumberRoundTrip(t *testing.T) {
	for i, level := range orderedLevels {
		assert.Equal(t, int32(i), level.Number(), level.String())

		back, err := valueobject.RiskLevelFromNumber(level.Number())
		require.NoError(t, err)
		assert.True(t, level.Equal(back))
	}

	_, err := valueobject.RiskLevelFromNumber(4)
	require.Error(t, err)
	_, err = valueobject.RiskLevelFromNumber(-1)
	require.Error(t, err)
}

func TestRiskLevel_SeverityOrder(t *testing.T) {
	for i := range orderedLevels {
		for j := range orderedLevels {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assert.Equal(t, want, orderedLevels[i].Compare(orderedLevels[j]),
				"%s vs %s", orderedLevels[i], orderedLevels[j])
			assert.Equal(t, i >= j, orderedLevels[i].AtLeast(orderedLevels[j]))
		}
	}
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}
