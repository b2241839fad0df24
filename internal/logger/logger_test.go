package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "default config",
			config: nil,
		},
		{
			name: "custom json config",
			config: &Config{
				Level:  "debug",
				Format: "json",
			},
		},
		{
			name: "console config",
			config: &Config{
				Level:  "info",
				Format: "console",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.config)
			assert.NotNil(t, logger)
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	logger.Info("test message")

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "test message", logEntry["message"])
	assert.NotEmpty(t, logEntry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	childLogger := logger.With().
		Str("db", "chatapp").
		Int("entities", 12).
		Logger()

	childLogger.Info("schema built")

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "chatapp", logEntry["db"])
	assert.Equal(t, float64(12), logEntry["entities"])
	assert.Equal(t, "schema built", logEntry["message"])
}

func TestLogger_ErrorWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(&Config{
		Level:  "error",
		Format: "json",
		Output: buf,
	})

	testErr := errors.New("connection refused")
	logger.ErrorWith("fetch failed", testErr, map[string]interface{}{
		"server": "localhost:3000",
	})

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "fetch failed", logEntry["message"])
	assert.Equal(t, "connection refused", logEntry["error"])
	assert.Equal(t, "localhost:3000", logEntry["server"])
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFunc  func(*Logger)
		expected bool // should log or not
	}{
		{
			name:  "debug level logs debug",
			level: "debug",
			logFunc: func(l *Logger) {
				l.Debug("debug message")
			},
			expected: true,
		},
		{
			name:  "info level skips debug",
			level: "info",
			logFunc: func(l *Logger) {
				l.Debug("debug message")
			},
			expected: false,
		},
		{
			name:  "error level logs error",
			level: "error",
			logFunc: func(l *Logger) {
				l.Error("error message")
			},
			expected: true,
		},
		{
			name:  "error level skips info",
			level: "error",
			logFunc: func(l *Logger) {
				l.Info("info message")
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(&Config{
				Level:  tt.level,
				Format: "json",
				Output: buf,
			})

			tt.logFunc(logger)

			if tt.expected {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := New(&Config{
		Level:  "info",
		Format: "json",
		Output: io.Discard,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message")
	}
}
