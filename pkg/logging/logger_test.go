package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithApplication(ctx, "Check Out")
	ctx = logging.WithStandard(ctx, "Allows wildcards")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"application":"Check Out"`)
	testLogger.AssertContains(t, `"standard":"Allows wildcards"`)
	testLogger.AssertContains(t, "test message")
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
}

func TestRequestID(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRequestID(ctx, "req-42")

	assert.Equal(t, "req-42", logging.RequestID(ctx))
	logging.FromContext(ctx).Info().Msg("handled")
	testLogger.AssertContains(t, `"request_id":"req-42"`)
}

func TestWithFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"rows":     12,
		"fallback": true,
		"dataset":  "search",
	})

	logging.FromContext(ctx).Debug().Msg("loaded")
	testLogger.AssertContains(t, `"rows":12`)
	testLogger.AssertContains(t, `"fallback":true`)
	testLogger.AssertContains(t, `"dataset":"search"`)
}

func TestConfiguration(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name     string
		level    string
		contains []string
		excludes []string
	}{
		{name: "debug level", level: "debug", contains: []string{`"level":"debug"`, `"level":"info"`}},
		{name: "error level only", level: "error", contains: []string{`"level":"error"`}, excludes: []string{`"level":"info"`}},
		{name: "invalid falls back to info", level: "chatty", contains: []string{`"level":"info"`}, excludes: []string{`"level":"debug"`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tc.level, Format: "json", Output: "discard"})
			logger = logger.Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			for _, want := range tc.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestConfigFileOutput(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "fieldscope.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"component": "loader"},
	})
	logger.Info().Msg("written to file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
	assert.Contains(t, string(content), `"component":"loader"`)
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("WARNING"))
	assert.Equal(t, zerolog.TraceLevel, logging.ParseLevel("trace"))
	assert.Equal(t, zerolog.Disabled, logging.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Warn().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())
	assert.True(t, strings.HasPrefix(tl.Lines()[0], "{"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("source", "search-data.csv").Msg("falling back")
	tl.AssertContains(t, "falling back")
	tl.AssertContains(t, "search-data.csv")
}
