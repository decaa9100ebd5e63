package computepfhrscore

import "pfhr-workers/internal/common/validation"

// inputsSchema guards the scorer. Income has minimum 0 so a zero income reaches the
// scorer and fails with its own message.
const inputsSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": [
		"monthly_income", "monthly_expenses", "emergency_fund", "total_debt",
		"monthly_debt_payments", "portfolio_value", "investment_experience",
		"risk_tolerance", "age"
	],
	"properties": {
		"monthly_income":        {"type": "integer", "minimum": 0},
		"monthly_expenses":      {"type": "integer", "minimum": 0},
		"emergency_fund":        {"type": "integer", "minimum": 0},
		"total_debt":            {"type": "integer", "minimum": 0},
		"monthly_debt_payments": {"type": "integer", "minimum": 0},
		"portfolio_value":       {"type": "integer", "minimum": 0},
		"investment_experience": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]},
		"risk_tolerance":        {"type": "string", "enum": ["conservative", "moderate", "aggressive"]},
		"age":                   {"type": "integer", "minimum": 18, "maximum": 120}
	}
}`

var inputsValidator = validation.MustCompile(inputsSchema)

// ValidateInputs checks raw PFHR inputs JSON and returns one "field: message" line per violation.
func ValidateInputs(raw []byte) ([]string, error) {
	result, err := inputsValidator.Validate(raw)
	if err != nil {
		return nil, err
	}
	if result.Valid {
		return nil, nil
	}
	return result.GetErrorMessages(), nil
}
