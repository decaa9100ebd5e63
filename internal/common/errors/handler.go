package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"pfhr-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Action is what HandleJobError does with a failed job.
type Action int

const (
	// ActionFail fails the job with retries left so Zeebe redelivers it.
	ActionFail Action = iota
	// ActionThrow throws a BPMN error for the process to catch.
	ActionThrow
)

// ErrorHandler turns worker errors into Zeebe fail or throw commands.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError reports err for job and sends the matching command.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	action, retries := Decide(job, stdErr)

	h.logError(job, stdErr, bpmnErr, action)
	metrics.RecordJobFailure(job.Type, string(stdErr.Code))

	var sendErr error
	switch action {
	case ActionFail:
		sendErr = h.failJob(ctx, client, job, bpmnErr, retries)
	default:
		sendErr = h.throwBPMNError(ctx, client, job, bpmnErr)
	}
	if sendErr != nil {
		h.logger.Error("failed to report job error", map[string]interface{}{
			"jobKey": job.Key,
			"error":  sendErr,
		})
	}
}

// Normalize wraps any error as a StandardError. Deadline overruns become QUERY_TIMEOUT.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewQueryTimeoutError("job", err)
	}
	return NewInternalError(err)
}

// Decide picks the action and the retries to set. A retryable error is failed with
// min(job.Retries-1, GetRetryCount) retries; once the job has none left it is thrown.
func Decide(job entities.Job, stdErr *StandardError) (Action, int32) {
	maxRetries := int32(GetRetryCount(stdErr.Code))
	if !stdErr.Retryable || maxRetries == 0 || job.Retries <= 1 {
		return ActionThrow, 0
	}
	remaining := job.Retries - 1
	if remaining > maxRetries {
		remaining = maxRetries
	}
	return ActionFail, remaining
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) error {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			_, err = withVars.Send(ctx)
			return err
		}
	}
	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) error {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			_, err = withVars.Send(ctx)
			return err
		}
	}
	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, action Action) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":        job.Key,
		"jobType":       job.Type,
		"workflowKey":   job.ProcessInstanceKey,
		"errorCode":     string(stdErr.Code),
		"bpmnErrorCode": bpmnErr.Code,
		"message":       bpmnErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"thrown":        action == ActionThrow,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
