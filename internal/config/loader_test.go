package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/clinic-admin-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DB_USER", "DB_PASSWORD", "DB_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: clinic-admin-service
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

storage:
  driver: postgres

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5

query:
  default_size: 20
  max_size: 50
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "rfc3339", cfg.Logger.TimeFormat)
	assert.Equal(t, "stdout", cfg.Logger.OutputTarget)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.EqualValues(t, 5, cfg.Postgres.MaxConns)
	assert.Equal(t, 20, cfg.Query.DefaultSize)
	assert.Equal(t, 50, cfg.Query.MaxSize)
}

func TestConfigLoad_EnvOverridesYAML(t *testing.T) {
	path := writeTempConfig(t, "app:\n  port: 9000\n")
	clearSecrets(t)
	t.Setenv("APP_APP_PORT", "9100")
	t.Setenv("APP_REDIS_ENABLED", "true")
	t.Setenv("APP_REDIS_ADDR", "cache:6379")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.App.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestConfigLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: dev\n")
	clearSecrets(t)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 10, cfg.Query.DefaultSize)
	assert.Equal(t, 100, cfg.Query.MaxSize)
	assert.Equal(t, 60, cfg.Redis.TTL)
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	yaml := `
storage:
  driver: postgres
postgres:
  host: localhost
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres.user")
}

func TestConfigLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad driver":        "storage:\n  driver: mongo\n",
		"max below default": "query:\n  default_size: 50\n  max_size: 10\n",
		"bad port":          "app:\n  port: 70000\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			clearSecrets(t)
			_, err := config.Load(writeTempConfig(t, yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
