package pfhr

import "math"

// Emergency fund policy.
const (
	EmergencyFundMonths      = 6
	EmergencyFundBonusCap    = 2.0 // ratio cap: credit stops at 12 months of reserve
	EmergencyFundBonusRate   = 0.1
	emergencyFundFundedScore = 100.0 // zero expenses, some reserve
	emergencyFundEmptyScore  = 50.0  // zero expenses, no reserve
)

// Debt policy. Each ratio falls off linearly and reaches 0 at its ceiling.
const (
	DebtToIncomeCeiling  = 0.36
	PaymentBurdenCeiling = 0.20
	DebtRatioWeight      = 0.6
	PaymentBurdenWeight  = 0.4
	monthsPerYear        = 12
)

// SavingsRateTarget is the savings rate that earns the full savings score.
const SavingsRateTarget = 0.20

// Knowledge policy.
const (
	KnowledgeBaseBeginner     = 40.0
	KnowledgeBaseIntermediate = 70.0
	KnowledgeBaseAdvanced     = 100.0
	AlignmentBonus            = 10.0
)

// Composite weights. They sum to 1.1, so Compute caps the composite at 100.
const (
	WeightEmergencyFund       = 0.30
	WeightDebt                = 0.30
	WeightSavingsRate         = 0.20
	WeightInvestmentReadiness = 0.20
	WeightFinancialKnowledge  = 0.10
)

const maxScore = 100.0

// ageBand maps an exclusive upper age bound to a target multiple of annual income.
type ageBand struct {
	below    int
	multiple float64
}

var ageBands = [...]ageBand{
	{below: 30, multiple: 0.5},
	{below: 35, multiple: 1.0},
	{below: 40, multiple: 2.0},
	{below: 50, multiple: 3.0},
	{below: 60, multiple: 6.0},
}

const ageBandTopMultiple = 8.0

// TargetMultiple returns the portfolio benchmark for age, as a multiple of annual income.
func TargetMultiple(age int) float64 {
	for _, b := range ageBands {
		if age < b.below {
			return b.multiple
		}
	}
	return ageBandTopMultiple
}

// Compute scores in. It fails with ErrInvalidIncome when monthly income is zero and
// otherwise assumes in has already been validated.
func Compute(in Inputs) (Result, error) {
	if in.MonthlyIncome == 0 {
		return Result{}, ErrInvalidIncome
	}

	raw := Breakdown{
		EmergencyFundScore:       EmergencyFundScore(in),
		DebtScore:                DebtScore(in),
		SavingsRateScore:         SavingsRateScore(in),
		InvestmentReadinessScore: InvestmentReadinessScore(in),
		FinancialKnowledgeScore:  FinancialKnowledgeScore(in),
	}

	score := Round2(clamp(Composite(raw), 0, maxScore))
	breakdown := Breakdown{
		EmergencyFundScore:       Round2(raw.EmergencyFundScore),
		DebtScore:                Round2(raw.DebtScore),
		SavingsRateScore:         Round2(raw.SavingsRateScore),
		InvestmentReadinessScore: Round2(raw.InvestmentReadinessScore),
		FinancialKnowledgeScore:  Round2(raw.FinancialKnowledgeScore),
	}

	return Result{
		Score:           score,
		Breakdown:       breakdown,
		RiskLevel:       ClassifyRisk(score, breakdown),
		Recommendations: Recommend(in, breakdown),
	}, nil
}

// Composite is the weighted sum of b, unrounded and uncapped.
func Composite(b Breakdown) float64 {
	return b.EmergencyFundScore*WeightEmergencyFund +
		b.DebtScore*WeightDebt +
		b.SavingsRateScore*WeightSavingsRate +
		b.InvestmentReadinessScore*WeightInvestmentReadiness +
		b.FinancialKnowledgeScore*WeightFinancialKnowledge
}

// EmergencyFundScore rates the reserve against six months of expenses.
func EmergencyFundScore(in Inputs) float64 {
	target := float64(in.MonthlyExpenses) * EmergencyFundMonths
	if target == 0 {
		if in.EmergencyFund > 0 {
			return emergencyFundFundedScore
		}
		return emergencyFundEmptyScore
	}

	ratio := float64(in.EmergencyFund) / target
	score := clamp(ratio, 0, 1) * maxScore
	if ratio > 1 {
		capped := math.Min(ratio, EmergencyFundBonusCap)
		score = math.Min(maxScore, score*(1+(capped-1)*EmergencyFundBonusRate))
	}
	return clamp(score, 0, maxScore)
}

// DebtScore blends the debt-to-income and payment-burden ratios against annual income.
func DebtScore(in Inputs) float64 {
	dti := DebtToIncomeRatio(in)
	burden := 0.0
	if annual := annualIncome(in); annual != 0 {
		burden = float64(in.MonthlyDebtPayments) * monthsPerYear / annual
	}

	ratioScore := math.Max(0, maxScore-(dti/DebtToIncomeCeiling)*maxScore)
	burdenScore := math.Max(0, maxScore-(burden/PaymentBurdenCeiling)*maxScore)

	return clamp(ratioScore*DebtRatioWeight+burdenScore*PaymentBurdenWeight, 0, maxScore)
}

// DebtToIncomeRatio is total debt over annual income, 0 when income is 0.
func DebtToIncomeRatio(in Inputs) float64 {
	annual := annualIncome(in)
	if annual == 0 {
		return 0
	}
	return float64(in.TotalDebt) / annual
}

// SavingsRateScore rates what is left of post-debt income after expenses.
func SavingsRateScore(in Inputs) float64 {
	disposable := in.MonthlyIncome - in.MonthlyDebtPayments
	if disposable <= 0 {
		return 0
	}
	savings := disposable - in.MonthlyExpenses
	rate := float64(savings) / float64(disposable)
	return clamp(rate/SavingsRateTarget, 0, 1) * maxScore
}

// InvestmentReadinessScore compares the portfolio to the age-appropriate benchmark.
func InvestmentReadinessScore(in Inputs) float64 {
	portfolioRatio := 0.0
	if annual := annualIncome(in); annual != 0 {
		portfolioRatio = float64(in.PortfolioValue) / annual
	}
	return clamp(portfolioRatio/TargetMultiple(in.Age), 0, 1) * maxScore
}

// FinancialKnowledgeScore rates stated experience, with a bonus for the three
// canonical experience/tolerance pairs.
func FinancialKnowledgeScore(in Inputs) float64 {
	var base float64
	switch in.InvestmentExperience {
	case ExperienceBeginner:
		base = KnowledgeBaseBeginner
	case ExperienceIntermediate:
		base = KnowledgeBaseIntermediate
	case ExperienceAdvanced:
		base = KnowledgeBaseAdvanced
	}

	if aligned(in.InvestmentExperience, in.RiskTolerance) {
		return math.Min(maxScore, base+AlignmentBonus)
	}
	return base
}

// aligned reports exact canonical pairs only; near pairs earn nothing.
func aligned(exp ExperienceLevel, tol RiskTolerance) bool {
	switch {
	case exp == ExperienceBeginner && tol == ToleranceConservative,
		exp == ExperienceIntermediate && tol == ToleranceModerate,
		exp == ExperienceAdvanced && tol == ToleranceAggressive:
		return true
	}
	return false
}

func annualIncome(in Inputs) float64 {
	return float64(in.MonthlyIncome) * monthsPerYear
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds v to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
