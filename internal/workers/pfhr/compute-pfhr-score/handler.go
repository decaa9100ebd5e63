package computepfhrscore

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"pfhr-workers/internal/common/errors"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/common/metrics"
	"pfhr-workers/internal/pfhr"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "compute-pfhr-score"

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	raw := bytes.TrimSpace(input.Inputs)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.NewPFHRInputValidationError([]string{"inputs: inputs is required"})
	}

	violations, err := ValidateInputs(raw)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if len(violations) > 0 {
		h.logger.Warn("pfhr inputs rejected", map[string]interface{}{
			"userId":     input.UserID,
			"violations": violations,
		})
		return nil, errors.NewPFHRInputValidationError(violations)
	}

	var in pfhr.Inputs
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.NewParseError(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := pfhr.Compute(in)
	if err != nil {
		if stderrors.Is(err, pfhr.ErrInvalidIncome) {
			return nil, errors.NewPFHRInvalidIncomeError(err)
		}
		return nil, errors.NewInternalError(err)
	}

	metrics.RecordAssessment(result.Score, string(result.RiskLevel))
	h.logger.Info("pfhr score computed", map[string]interface{}{
		"userId":    input.UserID,
		"score":     result.Score,
		"riskLevel": result.RiskLevel,
	})

	return &Output{
		UserID:     input.UserID,
		PFHR:       result,
		ComputedAt: h.now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
