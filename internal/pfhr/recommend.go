package pfhr

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Recommendation gates: a component below its gate produces advice.
const (
	EmergencyFundGate       = 50.0
	DebtGate                = 50.0
	SavingsRateGate         = 50.0
	InvestmentReadinessGate = 50.0
	FinancialKnowledgeGate  = 60.0
)

// FallbackRecommendation is returned when no gate fires.
const FallbackRecommendation = "Maintain current financial practices"

// Recommend builds advice for every component of b under its gate, in a fixed order:
// emergency fund, debt, savings rate, investment readiness, financial knowledge.
// The result is never empty.
func Recommend(in Inputs, b Breakdown) []string {
	var recs []string

	if b.EmergencyFundScore < EmergencyFundGate {
		target := in.MonthlyExpenses * EmergencyFundMonths
		recs = append(recs, fmt.Sprintf(
			"Build your emergency fund to %s (%d months of expenses); you currently have %s set aside",
			FormatCents(target), EmergencyFundMonths, FormatCents(in.EmergencyFund),
		))
	}

	if b.DebtScore < DebtGate {
		if dti := DebtToIncomeRatio(in); dti > DebtToIncomeCeiling {
			recs = append(recs, fmt.Sprintf(
				"Your debt-to-income ratio is %.1f%%, above the recommended %.0f%%; reduce your %s of outstanding debt",
				dti*100, DebtToIncomeCeiling*100, FormatCents(in.TotalDebt),
			))
		} else {
			recs = append(recs, "Pay down high-interest debt first to lower your monthly debt payments")
		}
	}

	if b.SavingsRateScore < SavingsRateGate {
		recs = append(recs, savingsRecommendation(in))
	}

	if b.InvestmentReadinessScore < InvestmentReadinessGate {
		multiple := TargetMultiple(in.Age)
		target := int64(math.Round(float64(in.MonthlyIncome) * monthsPerYear * multiple))
		recs = append(recs, fmt.Sprintf(
			"Grow your investment portfolio toward %s (%gx annual income at age %d); it is currently worth %s",
			FormatCents(target), multiple, in.Age, FormatCents(in.PortfolioValue),
		))
	}

	if b.FinancialKnowledgeScore < FinancialKnowledgeGate {
		recs = append(recs, "Strengthen your investing knowledge with financial education resources and match your risk tolerance to your experience")
	}

	if len(recs) == 0 {
		return []string{FallbackRecommendation}
	}
	return recs
}

func savingsRecommendation(in Inputs) string {
	disposable := in.MonthlyIncome - in.MonthlyDebtPayments
	if disposable <= 0 {
		return fmt.Sprintf(
			"Your monthly debt payments of %s leave no income to save; restructure your debt before building savings",
			FormatCents(in.MonthlyDebtPayments),
		)
	}
	target := int64(math.Round(float64(disposable) * SavingsRateTarget))
	current := disposable - in.MonthlyExpenses
	return fmt.Sprintf(
		"Save at least %s per month (%.0f%% of income after debt payments); you currently save %s",
		FormatCents(target), SavingsRateTarget*100, FormatCents(current),
	)
}

// FormatCents renders an amount in cents as US dollars, e.g. "$18,000.00" or "-$12.50".
func FormatCents(cents int64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + p.Sprintf("$%.2f", float64(cents)/100)
}
