package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	PFHRScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pfhr_score",
			Help:    "Distribution of computed PFHR composite scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	PFHRRiskLevel = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfhr_risk_level_total",
			Help: "Computed PFHR assessments by risk level",
		},
		[]string{"risk_level"},
	)
)

// StartJob marks a job of taskType active. The returned func ends it and counts it as
// completed when completed is true. Failures are counted by RecordJobFailure.
func StartJob(taskType string) func(completed bool) {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()

	return func(completed bool) {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if completed {
			WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}
	}
}

func RecordJobFailure(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// RecordAssessment counts one computed assessment.
func RecordAssessment(score float64, riskLevel string) {
	PFHRScore.Observe(score)
	PFHRRiskLevel.WithLabelValues(riskLevel).Inc()
}
