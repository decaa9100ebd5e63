package camunda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pfhr-workers/internal/common/config"
	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/common/metrics"
	"pfhr-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
)

// Job outcomes as observed from the commands a handler issues.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeThrown    = "thrown"
	OutcomeAbandoned = "abandoned"
)

// Registrar opens job workers and instruments their handlers.
type Registrar struct {
	client  zbc.Client
	obs     *observability.Observability
	logger  logger.Logger
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewRegistrar(client zbc.Client, obs *observability.Observability, log logger.Logger) *Registrar {
	return &Registrar{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Register opens a job worker for taskType unless wcfg disables it. It reports whether a
// worker was opened.
func (r *Registrar) Register(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		r.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := r.client.NewJobWorker().
		JobType(taskType).
		Handler(r.Instrument(taskType, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType).
		Open()

	r.mu.Lock()
	r.workers[taskType] = jw
	r.mu.Unlock()

	r.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// TaskTypes lists the registered job types.
func (r *Registrar) TaskTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.workers))
	for t := range r.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (r *Registrar) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for taskType, jw := range r.workers {
		r.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
	}
	r.workers = make(map[string]worker.JobWorker)
}

// Instrument wraps handler with a span, OpenTelemetry job metrics and the Prometheus
// job counters. The outcome is taken from the command the handler issues.
func (r *Registrar) Instrument(taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		done := metrics.StartJob(taskType)
		ctx, span := r.obs.StartSpan(context.Background(), taskType,
			attribute.Int64("job.key", job.GetKey()),
			attribute.Int64("process.instance.key", job.GetProcessInstanceKey()),
		)

		rec := &recordingClient{JobClient: client}
		handler(rec, job)

		outcome := rec.Outcome()
		done(outcome == OutcomeCompleted)
		r.obs.RecordJobProcessed(ctx, taskType, outcome)
		r.obs.RecordJobDuration(ctx, taskType, time.Since(start), outcome)

		span.SetAttributes(attribute.String("job.outcome", outcome))
		var err error
		if outcome != OutcomeCompleted {
			err = fmt.Errorf("job %d %s", job.GetKey(), outcome)
		}
		observability.EndSpan(span, err)
	}
}

// recordingClient notes which terminal command a handler asked for.
type recordingClient struct {
	worker.JobClient
	mu      sync.Mutex
	outcome string
}

func (c *recordingClient) set(outcome string) {
	c.mu.Lock()
	c.outcome = outcome
	c.mu.Unlock()
}

func (c *recordingClient) Outcome() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcome == "" {
		return OutcomeAbandoned
	}
	return c.outcome
}

func (c *recordingClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.set(OutcomeCompleted)
	return c.JobClient.NewCompleteJobCommand()
}

func (c *recordingClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.set(OutcomeFailed)
	return c.JobClient.NewFailJobCommand()
}

func (c *recordingClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.set(OutcomeThrown)
	return c.JobClient.NewThrowErrorCommand()
}
