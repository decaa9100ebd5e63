package pfhr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knowledgeRecommendation = "Strengthen your investing knowledge with financial education resources and match your risk tolerance to your experience"

func TestRecommend_HighDebtHousehold(t *testing.T) {
	result, err := Compute(createHighDebtInputs())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Build your emergency fund to $24,000.00 (6 months of expenses); you currently have $1,000.00 set aside",
		"Your debt-to-income ratio is 166.7%, above the recommended 36%; reduce your $100,000.00 of outstanding debt",
		"Save at least $600.00 per month (20% of income after debt payments); you currently save -$1,000.00",
		"Grow your investment portfolio toward $60,000.00 (1x annual income at age 30); it is currently worth $0.00",
		knowledgeRecommendation,
	}, result.Recommendations)
}

func TestRecommend_GenericDebtAdvice(t *testing.T) {
	in := Inputs{
		MonthlyIncome:        1000000,
		MonthlyExpenses:      0,
		EmergencyFund:        100000,
		TotalDebt:            3600000,
		MonthlyDebtPayments:  150000,
		PortfolioValue:       100000000,
		InvestmentExperience: ExperienceAdvanced,
		RiskTolerance:        ToleranceAggressive,
		Age:                  32,
	}

	result, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.Breakdown.DebtScore)
	assert.Equal(t, []string{"Pay down high-interest debt first to lower your monthly debt payments"}, result.Recommendations)
}

func TestRecommend_PaymentsExceedIncome(t *testing.T) {
	in := Inputs{
		MonthlyIncome:        100000,
		MonthlyExpenses:      0,
		EmergencyFund:        100000,
		TotalDebt:            0,
		MonthlyDebtPayments:  150000,
		PortfolioValue:       100000000,
		InvestmentExperience: ExperienceAdvanced,
		RiskTolerance:        ToleranceAggressive,
		Age:                  32,
	}

	result, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Your monthly debt payments of $1,500.00 leave no income to save; restructure your debt before building savings",
	}, result.Recommendations)
}

func TestRecommend_Gates(t *testing.T) {
	in := createBalancedInputs()

	tests := []struct {
		name      string
		breakdown Breakdown
		expected  int
	}{
		{
			name:      "every component at its gate",
			breakdown: Breakdown{50, 50, 50, 50, 60},
			expected:  0,
		},
		{
			name:      "only knowledge below gate",
			breakdown: Breakdown{100, 100, 100, 100, 59.99},
			expected:  1,
		},
		{
			name:      "every component below gate",
			breakdown: Breakdown{49.99, 49.99, 49.99, 49.99, 59.99},
			expected:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommend(in, tt.breakdown)
			if tt.expected == 0 {
				assert.Equal(t, []string{FallbackRecommendation}, recs)
				return
			}
			assert.Len(t, recs, tt.expected)
		})
	}
}

func TestRecommend_KnowledgeGate(t *testing.T) {
	aligned := createHighNetWorthInputs()
	aligned.InvestmentExperience = ExperienceBeginner
	aligned.RiskTolerance = ToleranceConservative

	result, err := Compute(aligned)
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Breakdown.FinancialKnowledgeScore)
	assert.Equal(t, []string{knowledgeRecommendation}, result.Recommendations)

	intermediate := createHighNetWorthInputs()
	intermediate.InvestmentExperience = ExperienceIntermediate
	intermediate.RiskTolerance = ToleranceAggressive

	result, err = Compute(intermediate)
	require.NoError(t, err)
	assert.Equal(t, 70.0, result.Breakdown.FinancialKnowledgeScore)
	assert.Equal(t, []string{FallbackRecommendation}, result.Recommendations)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1250, "$12.50"},
		{1800000, "$18,000.00"},
		{123456789, "$1,234,567.89"},
		{-100000, "-$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCents(tt.cents))
		})
	}
}
