// Package pfhr computes the Personal Financial Health & Readiness score.
//
// Compute is a pure function: it reads only its argument, keeps no state between calls and
// returns a freshly built Result, so it can be called from any number of goroutines.
// Input validation is the caller's job (see Inputs.Validate and the compute-pfhr-score worker);
// Compute only guards the zero-income case.
package pfhr

// ExperienceLevel is the investor's self-declared investment experience.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// RiskTolerance is the investor's self-declared appetite for risk.
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

func (r RiskTolerance) Valid() bool {
	switch r {
	case ToleranceConservative, ToleranceModerate, ToleranceAggressive:
		return true
	}
	return false
}

// RiskLevel is the categorical outcome derived from the score and breakdown.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Inputs holds a user's financial situation. Monetary fields are in cents.
type Inputs struct {
	MonthlyIncome        int64           `json:"monthly_income"`
	MonthlyExpenses      int64           `json:"monthly_expenses"`
	EmergencyFund        int64           `json:"emergency_fund"`
	TotalDebt            int64           `json:"total_debt"`
	MonthlyDebtPayments  int64           `json:"monthly_debt_payments"`
	PortfolioValue       int64           `json:"portfolio_value"`
	InvestmentExperience ExperienceLevel `json:"investment_experience"`
	RiskTolerance        RiskTolerance   `json:"risk_tolerance"`
	Age                  int             `json:"age"`
}

// Breakdown holds the five component scores, each in [0, 100].
type Breakdown struct {
	EmergencyFundScore       float64 `json:"emergency_fund_score"`
	DebtScore                float64 `json:"debt_score"`
	SavingsRateScore         float64 `json:"savings_rate_score"`
	InvestmentReadinessScore float64 `json:"investment_readiness_score"`
	FinancialKnowledgeScore  float64 `json:"financial_knowledge_score"`
}

// Result is the output of Compute.
type Result struct {
	Score           float64   `json:"score"`
	Breakdown       Breakdown `json:"breakdown"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
}
