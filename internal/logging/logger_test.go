package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  log.Level
		ok    bool
	}{
		{"debug", log.DebugLevel, true},
		{"info", log.InfoLevel, true},
		{"warn", log.WarnLevel, true},
		{"warning", log.WarnLevel, true},
		{"error", log.ErrorLevel, true},
		{"DEBUG", log.DebugLevel, true},
		{" Info ", log.InfoLevel, true},
		{"", log.InfoLevel, false},
		{"verbose", log.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := logging.ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")
	require.NotNil(t, logger)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldPath, "note.md")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "path=note.md")
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	logger := logging.NewWriter(&bytes.Buffer{}, "debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWriter(&buf, "debug"))
	fileCtx := logging.WithFields(ctx, logging.FieldPath, "a.md")

	logging.FromContext(fileCtx).Info("parsed")
	logging.FromContext(ctx).Info("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "path=a.md")
	assert.NotContains(t, lines[1], "path=a.md")
}

func TestSetDefault(t *testing.T) {
	// Mutates the process-wide logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.NewWriter(&bytes.Buffer{}, "error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.InfoLevel, logging.NewInteractive("").GetLevel())
	assert.Equal(t, log.DebugLevel, logging.NewInteractive("debug").GetLevel())
}
