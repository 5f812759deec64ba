package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/maxviazov/clinic-admin-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "prod",
				Level:       "info",
				Fields:      map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "invalid configuration - wrong env",
			config:      &logpkg.LoggerConfig{Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "invalid log level",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "invalid-level"},
			expectError: true,
		},
		{
			name:        "invalid time format",
			config:      &logpkg.LoggerConfig{Env: "prod", TimeFormat: "yesterday"},
			expectError: true,
		},
		{
			name:      "valid staging environment",
			config:    &logpkg.LoggerConfig{Env: "staging", Level: "warn", TimeFormat: "unix"},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "dev defaults to debug",
			config:    &logpkg.LoggerConfig{Env: "dev", Output: &bytes.Buffer{}},
			wantLevel: zerolog.DebugLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.config.Output == nil {
				test.config.Output = &bytes.Buffer{}
			}
			_, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_JSONCarriesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := logpkg.New(&logpkg.LoggerConfig{
		ServiceName:    "clinic",
		ServiceVersion: "1.2.3",
		Env:            "prod",
		Level:          "info",
		TimeField:      "time",
		TimeFormat:     "rfc3339",
		Fields:         map[string]interface{}{"region": "eu"},
		Output:         &buf,
	})
	require.NoError(t, err)

	l.Info().Str("module", "query").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "clinic", line["service"])
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "prod", line["env"])
	assert.Equal(t, "eu", line["region"])
	assert.Equal(t, "hello", line["message"])
	assert.Contains(t, line, "time")
}
