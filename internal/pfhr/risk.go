package pfhr

// Risk thresholds. High is checked first and wins.
const (
	HighRiskScoreBelow     = 50.0
	HighRiskComponentBelow = 30.0
	LowRiskScoreAbove      = 75.0
	LowRiskComponentAbove  = 60.0
)

// ClassifyRisk derives the risk level from the composite score and the emergency fund
// and debt components.
func ClassifyRisk(score float64, b Breakdown) RiskLevel {
	switch {
	case score < HighRiskScoreBelow ||
		b.EmergencyFundScore < HighRiskComponentBelow ||
		b.DebtScore < HighRiskComponentBelow:
		return RiskHigh
	case score > LowRiskScoreAbove &&
		b.EmergencyFundScore > LowRiskComponentAbove &&
		b.DebtScore > LowRiskComponentAbove:
		return RiskLow
	default:
		return RiskMedium
	}
}
