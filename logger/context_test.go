package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/programme-lv/contest/logger"
	"github.com/stretchr/testify/require"
)

func TestFromContextDefaultsToSlogDefault(t *testing.T) {
	require.Equal(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestWithAttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "text", "debug")

	ctx := logger.WithLogger(context.Background(), l)
	ctx = logger.With(ctx, "contest_id", "c1")
	logger.FromContext(ctx).Debug("ranking contest")

	require.Contains(t, buf.String(), "contest_id=c1")
	require.Contains(t, buf.String(), "ranking contest")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "json", "warn")
	l.Info("hidden")
	require.Empty(t, buf.String())
	l.Warn("shown")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}
