package sendpfhrsummary

import (
	"fmt"
	"strings"

	"pfhr-workers/internal/pfhr"
)

func summarySubject(r pfhr.Result) string {
	return fmt.Sprintf("Your PFHR score: %.2f (%s risk)", r.Score, r.RiskLevel)
}

// summaryBody renders the plain-text email: score, risk level, breakdown and numbered
// recommendations.
func summaryBody(r pfhr.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your Personal Financial Health & Readiness score is %.2f out of 100.\n", r.Score)
	fmt.Fprintf(&b, "Risk level: %s\n\n", r.RiskLevel)

	b.WriteString("Breakdown:\n")
	rows := []struct {
		label string
		value float64
	}{
		{"Emergency fund", r.Breakdown.EmergencyFundScore},
		{"Debt", r.Breakdown.DebtScore},
		{"Savings rate", r.Breakdown.SavingsRateScore},
		{"Investment readiness", r.Breakdown.InvestmentReadinessScore},
		{"Financial knowledge", r.Breakdown.FinancialKnowledgeScore},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-21s %6.2f\n", row.label+":", row.value)
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}
	return b.String()
}

func smsText(r pfhr.Result) string {
	return fmt.Sprintf("PFHR alert: your score is %.2f (%s risk). Check your email for recommendations.", r.Score, r.RiskLevel)
}
