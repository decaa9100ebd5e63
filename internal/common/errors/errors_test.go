package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errIncome = stderrors.New("Monthly income must be greater than 0 to calculate PFHR score")

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{
			name:            "validation failure is not retried",
			err:             NewPFHRInputValidationError([]string{"age: Must be greater than or equal to 18"}),
			expectedCode:    "PFHR_INPUT_VALIDATION_FAILED",
			expectedRetries: 0,
		},
		{
			name:            "insert failure retries three times",
			err:             NewDatabaseInsertFailedError("pfhr_assessments", stderrors.New("connection reset")),
			expectedCode:    "DATABASE_INSERT_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "timeout retries twice",
			err:             NewQueryTimeoutError("latest_assessment", context.DeadlineExceeded),
			expectedCode:    "QUERY_TIMEOUT",
			expectedRetries: 2,
		},
		{
			name:            "unmapped code passes through",
			err:             &StandardError{Code: "SOMETHING_ELSE", Message: "x"},
			expectedCode:    "SOMETHING_ELSE",
			expectedRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	violations := []string{"age: too young", "monthly_income: too small"}
	bpmnErr := ConvertToBPMNError(NewPFHRInputValidationError(violations))

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "PFHR_INPUT_VALIDATION_FAILED", vars["errorCode"])
	assert.Equal(t, "age: too young\nmonthly_income: too small", vars["errorDetails"])
	assert.Equal(t, violations, vars["violations"])
	assert.Equal(t, false, vars["retryable"])
}

func TestInvalidIncomeKeepsMessage(t *testing.T) {
	stdErr := NewPFHRInvalidIncomeError(errIncome)

	assert.Equal(t, "Monthly income must be greater than 0 to calculate PFHR score", stdErr.Message)
	assert.True(t, stderrors.Is(stdErr, errIncome))
	assert.False(t, stdErr.Retryable)
}

func TestNormalize(t *testing.T) {
	t.Run("standard error inside a wrap", func(t *testing.T) {
		inner := NewQueryExecutionFailedError("users", stderrors.New("bad"))
		got := Normalize(fmt.Errorf("lookup: %w", inner))
		assert.Same(t, inner, got)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		got := Normalize(fmt.Errorf("query: %w", context.DeadlineExceeded))
		assert.Equal(t, ErrCodeQueryTimeout, got.Code)
		assert.True(t, got.Retryable)
	})

	t.Run("anything else", func(t *testing.T) {
		got := Normalize(stderrors.New("surprise"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "surprise", got.Details)
		assert.False(t, got.Retryable)
	})
}

func TestDecide(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Retries: retries}}
	}
	retryable := NewDatabaseInsertFailedError("pfhr_assessments", stderrors.New("down"))
	business := NewPFHRInvalidIncomeError(errIncome)

	tests := []struct {
		name            string
		job             entities.Job
		err             *StandardError
		expectedAction  Action
		expectedRetries int32
	}{
		{"business error is thrown", job(3), business, ActionThrow, 0},
		{"retryable error with retries left", job(3), retryable, ActionFail, 2},
		{"engine retries above code limit are capped", job(10), retryable, ActionFail, 3},
		{"last attempt is thrown", job(1), retryable, ActionThrow, 0},
		{"timeout is capped at two", job(5), NewQueryTimeoutError("q", context.DeadlineExceeded), ActionFail, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, retries := Decide(tt.job, tt.err)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedRetries, retries)
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SCORING", GetErrorCategory(ErrCodePFHRInvalidIncome))
	assert.Equal(t, "SCORING", GetErrorCategory(ErrCodePFHRInputValidation))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestAsStandardError(t *testing.T) {
	_, ok := AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)

	wrapped := fmt.Errorf("outer: %w", NewInvalidInputError("userId is required"))
	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidInput, stdErr.Code)
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryExecutionFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidInput))
}
