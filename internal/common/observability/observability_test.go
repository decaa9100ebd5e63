package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObservability(t *testing.T) (*Observability, *tracetest.SpanRecorder, *promclient.Registry) {
	t.Helper()
	reg := promclient.NewRegistry()
	rec := tracetest.NewSpanRecorder()

	obs, err := New("pfhr-workers-test", WithRegisterer(reg), WithSpanProcessor(rec))
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })
	return obs, rec, reg
}

func TestStartSpan(t *testing.T) {
	obs, rec, _ := newTestObservability(t)

	_, span := obs.StartSpan(context.Background(), "compute-pfhr-score", attribute.String("userId", "user-1"))
	EndSpan(span, nil)

	_, failed := obs.StartSpan(context.Background(), "record-pfhr-assessment")
	EndSpan(failed, errors.New("insert failed"))

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "compute-pfhr-score", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("userId", "user-1"))

	assert.Equal(t, "record-pfhr-assessment", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "insert failed", ended[1].Status().Description)
}

func TestRecordJobMetrics(t *testing.T) {
	obs, _, reg := newTestObservability(t)

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "compute-pfhr-score", "completed")
	obs.RecordJobDuration(ctx, "compute-pfhr-score", 15*time.Millisecond, "completed")

	families, err := reg.Gather()
	require.NoError(t, err)

	var sawCounter, sawHistogram bool
	for _, f := range families {
		switch {
		case strings.HasPrefix(f.GetName(), "jobs_processed"):
			sawCounter = true
		case strings.HasPrefix(f.GetName(), "jobs_duration"):
			sawHistogram = true
		}
	}
	assert.True(t, sawCounter, "jobs.processed not exported")
	assert.True(t, sawHistogram, "jobs.duration not exported")
}

func TestNilObservabilityIsSafe(t *testing.T) {
	var obs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		_, span := obs.StartSpan(ctx, "noop")
		EndSpan(span, nil)
		obs.RecordJobProcessed(ctx, "t", "completed")
		obs.RecordJobDuration(ctx, "t", time.Second, "completed")
	})
	assert.NoError(t, obs.Shutdown(ctx))
}
