package pfhr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		breakdown Breakdown
		expected  RiskLevel
	}{
		{
			name:      "low score is high risk",
			score:     49.99,
			breakdown: Breakdown{EmergencyFundScore: 90, DebtScore: 90},
			expected:  RiskHigh,
		},
		{
			name:      "thin emergency fund is high risk despite strong score",
			score:     80,
			breakdown: Breakdown{EmergencyFundScore: 29.99, DebtScore: 90},
			expected:  RiskHigh,
		},
		{
			name:      "heavy debt is high risk despite strong score",
			score:     80,
			breakdown: Breakdown{EmergencyFundScore: 90, DebtScore: 10},
			expected:  RiskHigh,
		},
		{
			name:      "strong on every axis is low risk",
			score:     75.01,
			breakdown: Breakdown{EmergencyFundScore: 60.01, DebtScore: 60.01},
			expected:  RiskLow,
		},
		{
			name:      "score exactly 75 falls back to medium",
			score:     75,
			breakdown: Breakdown{EmergencyFundScore: 90, DebtScore: 90},
			expected:  RiskMedium,
		},
		{
			name:      "emergency fund exactly 60 falls back to medium",
			score:     90,
			breakdown: Breakdown{EmergencyFundScore: 60, DebtScore: 90},
			expected:  RiskMedium,
		},
		{
			name:      "boundaries of the high band are medium",
			score:     50,
			breakdown: Breakdown{EmergencyFundScore: 30, DebtScore: 30},
			expected:  RiskMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRisk(tt.score, tt.breakdown))
		})
	}
}

func TestRiskLevel_Valid(t *testing.T) {
	assert.True(t, RiskLow.Valid())
	assert.True(t, RiskMedium.Valid())
	assert.True(t, RiskHigh.Valid())
	assert.False(t, RiskLevel("critical").Valid())
}
