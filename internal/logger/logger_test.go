package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Writer: &buf,
	}

	logger := New(cfg)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantFormat  string
	}{
		{
			name:        "production uses json",
			environment: "production",
			wantFormat:  "json",
		},
		{
			name:        "development uses pretty",
			environment: "development",
			wantFormat:  "pretty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := Config{
				Level:       slog.LevelInfo,
				Environment: tt.environment,
				Writer:      &buf,
			}

			logger := New(cfg)
			logger.Info("test")

			output := buf.String()
			if tt.wantFormat == "json" {
				assert.Contains(t, output, `"msg":"test"`)
			} else {
				// Pretty format includes the level marker and ANSI colors.
				assert.Contains(t, output, "INF")
				assert.Contains(t, output, "test")
			}
		})
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: "pretty",
		Writer: &buf,
	})

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warning")

	output := buf.String()
	assert.NotContains(t, output, "hidden debug")
	assert.NotContains(t, output, "hidden info")
	assert.Contains(t, output, "visible warning")
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: "pretty",
		Writer: &buf,
	})

	logger.Info("reservation created", "item_id", "item-123", "topic", "abc")

	output := buf.String()
	assert.Contains(t, output, "item_id=item-123")
	assert.Contains(t, output, "topic=abc")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input: %s", tt.input)
	}
}
