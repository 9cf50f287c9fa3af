package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())

	// A no-op logger, never nil
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("test")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithCallerID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithCallerID(context.Background(), logger, "6f9619ff-8b86-d011-b42d-00c04fc964ff")

	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", GetCallerID(ctx))

	enriched.Info("test")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", entries[0].ContextMap()["caller_id"])
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetCallerID_Missing(t *testing.T) {
	assert.Empty(t, GetCallerID(context.Background()))
}

func TestL(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")
	ctx = context.WithValue(ctx, CallerIDKey, "caller-1")

	L(ctx).Info("status changed")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-456", fields["request_id"])
	assert.Equal(t, "caller-1", fields["caller_id"])
}

func TestL_EmptyContext(t *testing.T) {
	// Must not panic without a logger in context
	L(context.Background()).Info("dropped")
}
