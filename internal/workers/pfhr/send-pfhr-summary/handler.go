package sendpfhrsummary

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"pfhr-workers/internal/common/aws"
	"pfhr-workers/internal/common/errors"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/models"
	"pfhr-workers/internal/pfhr"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "send-pfhr-summary"

const contactQuery = `SELECT email, phone FROM users WHERE id = $1`

const insertAuditQuery = `INSERT INTO audit_log
	(entity_type, entity_id, action, actor_id, details)
	VALUES ($1, $2, $3, $4, $5)`

type Handler struct {
	config       *Config
	db           *sql.DB
	sesClient    aws.SESService
	snsClient    aws.SNSService
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, db *sql.DB, clients *aws.Clients, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	h := &Handler{
		config:       config,
		db:           db,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
		now:          time.Now,
	}
	if clients != nil {
		h.sesClient = clients.SES
		h.snsClient = clients.SNS
	}
	return h
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

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         models.NotificationDisabled,
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}

	contact, err := h.lookupContact(ctx, input.UserID)
	if stderrors.Is(err, sql.ErrNoRows) {
		h.logger.Warn("recipient not found", map[string]interface{}{"userId": input.UserID})
		return output, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("user_contact", err)
	}

	if h.config.EmailEnabled && h.sesClient != nil && contact.Email != "" {
		_, err := aws.SendEmail(ctx, h.sesClient, aws.Email{
			From:    h.config.FromEmail,
			To:      contact.Email,
			Subject: summarySubject(input.PFHR),
			Body:    summaryBody(input.PFHR),
		})
		if err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
			output.Status = models.NotificationFailed
			return output, nil
		}
		output.Channels = append(output.Channels, ChannelEmail)
	}

	if h.config.SMSEnabled && h.snsClient != nil && contact.Phone != "" && input.PFHR.RiskLevel == pfhr.RiskHigh {
		if _, err := aws.SendSMS(ctx, h.snsClient, contact.Phone, smsText(input.PFHR)); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
			output.Status = models.NotificationFailed
			return output, nil
		}
		output.Channels = append(output.Channels, ChannelSMS)
	}

	if len(output.Channels) > 0 {
		output.Status = models.NotificationSent
		h.writeAudit(ctx, input, output)
	}

	h.logger.Info("pfhr summary processed", map[string]interface{}{
		"userId":         input.UserID,
		"notificationId": output.NotificationID,
		"status":         output.Status,
		"channels":       output.Channels,
	})
	return output, nil
}

func (h *Handler) lookupContact(ctx context.Context, userID string) (models.Contact, error) {
	var c models.Contact
	err := h.db.QueryRowContext(ctx, contactQuery, userID).Scan(&c.Email, &c.Phone)
	return c, err
}

func (h *Handler) writeAudit(ctx context.Context, input *Input, output *Output) {
	if input.AssessmentID == "" {
		return
	}
	details, err := json.Marshal(map[string]interface{}{
		"notificationId": output.NotificationID,
		"channels":       output.Channels,
	})
	if err == nil {
		_, err = h.db.ExecContext(ctx, insertAuditQuery,
			models.AuditEntityAssessment, input.AssessmentID, models.AuditActionSummarySent, input.UserID, string(details),
		)
	}
	if err != nil {
		h.logger.Warn("audit log write failed", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"error":        err,
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
