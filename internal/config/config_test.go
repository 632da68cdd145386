package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "camus-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.ConversationCacheTTL)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "auth without issuer",
			env:     map[string]string{"AUTH_ENABLED": "true", "AUTH_JWKS_URL": "http://keys"},
			wantErr: "AUTH_ISSUER",
		},
		{
			name:    "auth without jwks",
			env:     map[string]string{"AUTH_ENABLED": "true", "AUTH_ISSUER": "http://issuer"},
			wantErr: "AUTH_JWKS_URL",
		},
		{
			name:    "write lock without redis",
			env:     map[string]string{"CONVERSATION_WRITE_LOCK": "true"},
			wantErr: "REDIS_URL",
		},
		{
			name:    "sampling rate out of range",
			env:     map[string]string{"OTEL_SAMPLING_RATE": "1.5"},
			wantErr: "OTEL_SAMPLING_RATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Fallbacks(t *testing.T) {
	t.Setenv("WORKER_COUNT", "0")
	t.Setenv("TASK_TIMEOUT", "0s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 30*time.Second, cfg.TaskTimeout)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadEnvFiles_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "camus.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9191\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")

	original := EnvFiles
	EnvFiles = []string{filepath.Join(dir, "missing.env"), path}
	t.Cleanup(func() { EnvFiles = original })

	LoadEnvFiles()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}
