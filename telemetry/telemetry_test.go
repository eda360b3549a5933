package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/atomsolve/telemetry"
)

func TestMetrics_RecordTrial(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewMetrics(reg)
	require.NoError(t, err)

	m.RecordTrial("converged", 120, 7, 30*time.Millisecond)
	m.RecordTrial("converged", 80, 3, 10*time.Millisecond)
	m.RecordTrial("stopped", 5, 1, time.Millisecond)
	m.SetBestEnergy(-42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues("stopped")))
	assert.Equal(t, 205.0, testutil.ToFloat64(m.IterationsTotal))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.AcceptedMovesTotal))
	assert.Equal(t, -42.0, testutil.ToFloat64(m.BestEnergy))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TrialDurationSeconds))
}

func TestMetrics_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := telemetry.NewMetrics(reg)
	require.NoError(t, err)

	_, err = telemetry.NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.Metrics
	assert.NotPanics(t, func() {
		m.RecordTrial("stopped", 1, 1, time.Second)
		m.SetBestEnergy(1)
	})
}

func TestLoggerWithTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := telemetry.NewLogger(&buf, slog.LevelInfo, false)

	// No span: logger returned unchanged.
	assert.Same(t, logger, telemetry.LoggerWithTrace(context.Background(), logger))

	var traces bytes.Buffer
	shutdown, err := telemetry.SetupTracing(&traces, "test")
	require.NoError(t, err)

	ctx, span := otel.Tracer("telemetry_test").Start(context.Background(), "op")
	telemetry.LoggerWithTrace(ctx, logger).Info("hello")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "trace_id="+span.SpanContext().TraceID().String())
	assert.Contains(t, buf.String(), "span_id=")
	assert.Contains(t, traces.String(), `"Name": "op"`)
}

func TestParseLevel(t *testing.T) {
	lvl, err := telemetry.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = telemetry.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = telemetry.ParseLevel("loud")
	assert.Error(t, err)
}
