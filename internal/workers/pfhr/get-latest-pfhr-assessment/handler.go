package getlatestpfhrassessment

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"pfhr-workers/internal/common/database"
	"pfhr-workers/internal/common/errors"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/models"
	"pfhr-workers/internal/pfhr"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const TaskType = "get-latest-pfhr-assessment"

const queryType = "latest_pfhr_assessment"

const latestAssessmentQuery = `SELECT id, user_id, inputs, score, risk_level, breakdown, recommendations, created_at
	FROM pfhr_assessments
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT 1`

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        *redis.Client
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redisClient,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
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

	if a := h.fromCache(ctx, input.UserID); a != nil {
		h.logger.Info("latest assessment served", map[string]interface{}{
			"userId": input.UserID, "assessmentId": a.ID, "source": SourceCache,
		})
		return &Output{Found: true, Assessment: a, Source: SourceCache}, nil
	}

	a, err := h.fromDatabase(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		h.logger.Info("no assessment on record", map[string]interface{}{"userId": input.UserID})
		return &Output{Found: false}, nil
	}

	h.storeCache(ctx, a)
	h.logger.Info("latest assessment served", map[string]interface{}{
		"userId": input.UserID, "assessmentId": a.ID, "source": SourceDatabase,
	})
	return &Output{Found: true, Assessment: a, Source: SourceDatabase}, nil
}

// fromCache returns nil on a miss. Read and decode errors count as misses.
func (h *Handler) fromCache(ctx context.Context, userID string) *models.Assessment {
	if h.redis == nil {
		return nil
	}
	data, err := h.redis.Get(ctx, database.LatestAssessmentKey(userID)).Bytes()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			h.logger.Warn("latest assessment cache read failed", map[string]interface{}{
				"userId": userID,
				"error":  err,
			})
		}
		return nil
	}

	var a models.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		h.logger.Warn("discarding undecodable cached assessment", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
		return nil
	}
	return &a
}

// fromDatabase returns nil, nil when the user has no assessment.
func (h *Handler) fromDatabase(ctx context.Context, userID string) (*models.Assessment, error) {
	var (
		a                                models.Assessment
		riskLevel                        string
		inputsRaw, breakdownRaw, recsRaw []byte
	)
	err := h.db.QueryRowContext(ctx, latestAssessmentQuery, userID).Scan(
		&a.ID, &a.UserID, &inputsRaw, &a.Score, &riskLevel, &breakdownRaw, &recsRaw, &a.CreatedAt,
	)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil && stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, errors.NewQueryTimeoutError(queryType, err)
	case err != nil:
		return nil, errors.NewQueryExecutionFailedError(queryType, err)
	}

	a.RiskLevel = pfhr.RiskLevel(riskLevel)
	a.CreatedAt = a.CreatedAt.UTC()
	if err := json.Unmarshal(inputsRaw, &a.Inputs); err != nil {
		return nil, errors.NewInternalError(err)
	}
	if err := json.Unmarshal(breakdownRaw, &a.Breakdown); err != nil {
		return nil, errors.NewInternalError(err)
	}
	if err := json.Unmarshal(recsRaw, &a.Recommendations); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &a, nil
}

func (h *Handler) storeCache(ctx context.Context, a *models.Assessment) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(a)
	if err == nil {
		err = h.redis.Set(ctx, database.LatestAssessmentKey(a.UserID), data, h.config.CacheTTL).Err()
	}
	if err != nil {
		h.logger.Warn("latest assessment cache write failed", map[string]interface{}{
			"userId": a.UserID,
			"error":  err,
		})
	}
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
