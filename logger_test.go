package knn

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.WithK(5).WithDimension(3).Info("configured")
	assert.Contains(t, buf.String(), "k=5")
	assert.Contains(t, buf.String(), "dimension=3")

	buf.Reset()
	logger.LogBatch(ctx, 10, 0)
	assert.Contains(t, buf.String(), "batch prediction completed")
	assert.Contains(t, buf.String(), "count=10")

	buf.Reset()
	logger.LogBatch(ctx, 10, 2)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "success=8")

	buf.Reset()
	logger.LogFit(ctx, 4, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "fit failed")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.NotPanics(t, func() {
		logger.LogQuery(context.Background(), ModeRegression, 1, 1, nil)
	})
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))
}
