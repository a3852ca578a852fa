package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_URL", "API_TIMEOUT", "DATABASE_PATH", "HTTP_ADDRESS", "GRPC_ADDRESS", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CONFIG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://jsonplaceholder.typicode.com/users", cfg.API.URL)
	assert.Equal(t, 20*time.Second, cfg.API.Timeout)
	assert.Equal(t, "usuarios3.db", cfg.Database.Path)
	assert.Equal(t, ":8501", cfg.HTTP.Address)
	assert.Equal(t, ":50051", cfg.GRPC.Address)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://localhost:9999/users")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("DATABASE_PATH", "test.db")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/users", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  address: \":9000\"\nlog:\n  level: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EmptyGRPCAddressDisablesServer(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_ADDRESS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GRPC.Address)
}

func TestLoad_LogSettingsAreCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("LOG_FORMAT", " JSON ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("API_URL", "not a url")
	_, err = Load()
	require.Error(t, err)
}
