package recordpfhrassessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pfhr-workers/internal/common/database"
	"pfhr-workers/internal/common/errors"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const TaskType = "record-pfhr-assessment"

const insertAssessmentQuery = `INSERT INTO pfhr_assessments
	(id, user_id, inputs, score, risk_level, breakdown, recommendations, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertAuditQuery = `INSERT INTO audit_log
	(entity_type, entity_id, action, actor_id, details)
	VALUES ($1, $2, $3, $4, $5)`

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        *redis.Client
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
	newID        func() string
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redisClient,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
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
	if !input.PFHR.RiskLevel.Valid() {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("pfhr.risk_level %q is not a risk level", input.PFHR.RiskLevel))
	}

	assessment := models.NewAssessment(h.newID(), input.UserID, input.Inputs, input.PFHR, h.now())

	if err := h.insertAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	h.writeAudit(ctx, assessment)
	cached := h.cacheAssessment(ctx, assessment)

	h.logger.Info("pfhr assessment recorded", map[string]interface{}{
		"userId":       assessment.UserID,
		"assessmentId": assessment.ID,
		"score":        assessment.Score,
		"riskLevel":    assessment.RiskLevel,
	})

	return &Output{
		AssessmentID: assessment.ID,
		UserID:       assessment.UserID,
		CreatedAt:    assessment.CreatedAt.Format(time.RFC3339),
		Cached:       cached,
	}, nil
}

func (h *Handler) insertAssessment(ctx context.Context, a *models.Assessment) error {
	inputs, err := json.Marshal(a.Inputs)
	if err != nil {
		return errors.NewInternalError(err)
	}
	breakdown, err := json.Marshal(a.Breakdown)
	if err != nil {
		return errors.NewInternalError(err)
	}
	recommendations, err := json.Marshal(a.Recommendations)
	if err != nil {
		return errors.NewInternalError(err)
	}

	_, err = h.db.ExecContext(ctx, insertAssessmentQuery,
		a.ID, a.UserID, string(inputs), a.Score, string(a.RiskLevel),
		string(breakdown), string(recommendations), a.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(database.TableAssessments, err)
	}
	return nil
}

// writeAudit is best effort; the assessment row is already committed.
func (h *Handler) writeAudit(ctx context.Context, a *models.Assessment) {
	details, err := json.Marshal(map[string]interface{}{
		"score":     a.Score,
		"riskLevel": a.RiskLevel,
	})
	if err == nil {
		_, err = h.db.ExecContext(ctx, insertAuditQuery,
			models.AuditEntityAssessment, a.ID, models.AuditActionAssessmentCreated, a.UserID, string(details),
		)
	}
	if err != nil {
		h.logger.Warn("audit log write failed", map[string]interface{}{
			"assessmentId": a.ID,
			"error":        err,
		})
	}
}

func (h *Handler) cacheAssessment(ctx context.Context, a *models.Assessment) bool {
	if h.redis == nil {
		return false
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
		return false
	}
	return true
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
