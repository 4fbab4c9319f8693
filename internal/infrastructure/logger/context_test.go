package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// contextWithSpan returns a context carrying a valid, sampled span context
func contextWithSpan(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), spanCtx)
}

func fieldValue(entry observer.LoggedEntry, key string) (string, bool) {
	for _, f := range entry.Context {
		if f.Key == key {
			return f.String, true
		}
	}
	return "", false
}

func TestWithContext(t *testing.T) {
	logger := zap.NewExample()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)

	// no-op logger must not panic
	logger.Info("discarded")
}

func TestWithRunID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, enriched := WithRunID(context.Background(), zap.New(core), "run-42")
	enriched.Info("preview started")

	assert.Equal(t, "run-42", GetRunID(ctx))
	assert.Equal(t, enriched, FromContext(ctx))

	logs := recorded.All()
	require.Len(t, logs, 1)
	runID, ok := fieldValue(logs[0], "run_id")
	assert.True(t, ok)
	assert.Equal(t, "run-42", runID)
	_, hasTrace := fieldValue(logs[0], "trace_id")
	assert.False(t, hasTrace)
}

func TestWithRunID_WithSpan(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	_, enriched := WithRunID(contextWithSpan(t), zap.New(core), "run-7")
	enriched.Info("commit finished")

	logs := recorded.All()
	require.Len(t, logs, 1)
	traceID, ok := fieldValue(logs[0], "trace_id")
	assert.True(t, ok)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traceID)
	spanID, ok := fieldValue(logs[0], "span_id")
	assert.True(t, ok)
	assert.Equal(t, "00f067aa0ba902b7", spanID)
}

func TestGetRunID_NotFound(t *testing.T) {
	assert.Empty(t, GetRunID(context.Background()))
}

func TestTraceIDs(t *testing.T) {
	t.Run("no span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("noop span has invalid context", func(t *testing.T) {
		ctx, span := noop.NewTracerProvider().Tracer("test").Start(context.Background(), "op")
		defer span.End()

		assert.Empty(t, GetTraceID(ctx))
		assert.Empty(t, GetSpanID(ctx))
	})

	t.Run("valid span", func(t *testing.T) {
		ctx := contextWithSpan(t)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
		assert.Equal(t, "00f067aa0ba902b7", GetSpanID(ctx))
	})
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	baseLogger := zap.NewNop()

	assert.Equal(t, baseLogger, WithTraceContext(context.Background(), baseLogger))
}

func TestWithTraceContext_WithSpan(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	WithTraceContext(contextWithSpan(t), zap.New(core)).Info("traced")

	logs := recorded.All()
	require.Len(t, logs, 1)
	traceID, ok := fieldValue(logs[0], "trace_id")
	assert.True(t, ok)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traceID)
}
