package pfhr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIncome is returned by Compute when monthly income is zero.
var ErrInvalidIncome = errors.New("Monthly income must be greater than 0 to calculate PFHR score")

const (
	MinAge = 18
	MaxAge = 120
)

// FieldError describes one violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every constraint an Inputs value violates.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "invalid PFHR inputs: " + strings.Join(parts, "; ")
}

// Validate checks in against the documented input constraints. Compute does not call it.
func (in Inputs) Validate() error {
	var fields []FieldError

	if in.MonthlyIncome <= 0 {
		fields = append(fields, FieldError{Field: "monthly_income", Message: "must be greater than 0"})
	}

	money := []struct {
		name  string
		value int64
	}{
		{"monthly_expenses", in.MonthlyExpenses},
		{"emergency_fund", in.EmergencyFund},
		{"total_debt", in.TotalDebt},
		{"monthly_debt_payments", in.MonthlyDebtPayments},
		{"portfolio_value", in.PortfolioValue},
	}
	for _, m := range money {
		if m.value < 0 {
			fields = append(fields, FieldError{Field: m.name, Message: "must not be negative"})
		}
	}

	if !in.InvestmentExperience.Valid() {
		fields = append(fields, FieldError{
			Field:   "investment_experience",
			Message: fmt.Sprintf("must be one of beginner, intermediate, advanced (got %q)", in.InvestmentExperience),
		})
	}
	if !in.RiskTolerance.Valid() {
		fields = append(fields, FieldError{
			Field:   "risk_tolerance",
			Message: fmt.Sprintf("must be one of conservative, moderate, aggressive (got %q)", in.RiskTolerance),
		})
	}
	if in.Age < MinAge || in.Age > MaxAge {
		fields = append(fields, FieldError{
			Field:   "age",
			Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
