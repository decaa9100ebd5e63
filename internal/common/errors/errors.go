// Package errors defines the error codes PFHR workers report to the workflow engine and
// the conversion from internal errors to BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode is a stable error identifier. It doubles as the BPMN error code.
type ErrorCode string

const (
	ErrCodeParseError               ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidInput             ErrorCode = "INVALID_INPUT"
	ErrCodePFHRInputValidation      ErrorCode = "PFHR_INPUT_VALIDATION_FAILED"
	ErrCodePFHRInvalidIncome        ErrorCode = "PFHR_INVALID_INCOME"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeExternalService          ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout                  ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the structured error every worker returns from execute.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is works across the boundary.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets a metadata key and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// BPMNError is what gets thrown to, or attached to a failed job in, Zeebe.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside a thrown or failed job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err.Error(), false, err)
}

// NewInvalidInputError reports a missing or malformed job variable outside the PFHR inputs.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false, nil)
}

// NewPFHRInputValidationError carries every schema violation in Details, one per line.
func NewPFHRInputValidationError(violations []string) *StandardError {
	e := newError(ErrCodePFHRInputValidation, "PFHR inputs failed validation",
		strings.Join(violations, "\n"), false, nil)
	return e.WithMetadata("violations", violations)
}

// NewPFHRInvalidIncomeError keeps the scorer's message as the BPMN error message.
func NewPFHRInvalidIncomeError(err error) *StandardError {
	return newError(ErrCodePFHRInvalidIncome, err.Error(), "", false, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewDatabaseInsertFailedError(table string, err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed",
		fmt.Sprintf("table: %s, error: %s", table, err.Error()), true, err)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true, err)
}

func NewQueryTimeoutError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout",
		fmt.Sprintf("queryType: %s", queryType), true, err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// BPMNErrorMapping maps internal codes to the error codes modelled in the BPMN diagrams.
// Codes missing here are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:               "PARSE_ERROR",
	ErrCodeInvalidInput:             "INVALID_INPUT",
	ErrCodePFHRInputValidation:      "PFHR_INPUT_VALIDATION_FAILED",
	ErrCodePFHRInvalidIncome:        "PFHR_INVALID_INCOME",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeDatabaseInsertFailed:     "DATABASE_INSERT_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns how many retries a code earns before it is thrown as a BPMN error.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeExternalService:
		return 3
	case ErrCodeQueryTimeout, ErrCodeTimeout:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// AsStandardError finds a StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "PFHR_"):
		return "SCORING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "INTEGRATION"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
