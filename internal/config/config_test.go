package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/forama
newsletter:
  admin_token: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 50, cfg.Newsletter.BatchSize)
	assert.Equal(t, time.Second, cfg.Newsletter.BatchDelay)
	assert.Equal(t, 587, cfg.Newsletter.Email.SMTPPort)
	assert.Equal(t, "FORAMA Boletín <noreply@email.forama.org>", cfg.Newsletter.Email.WelcomeFrom)
	assert.True(t, cfg.Database.Migrate)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "3000"
database:
  url: postgres://localhost/forama
newsletter:
  admin_token: secret
  batch_size: 25
  batch_delay: 500ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Newsletter.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Newsletter.BatchDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/forama
newsletter:
  admin_token: from-file
`)

	t.Setenv("FORAMA_NEWSLETTER__ADMIN_TOKEN", "from-env")
	t.Setenv("FORAMA_SERVER__PORT", "8888")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Newsletter.AdminToken)
	assert.Equal(t, "8888", cfg.Server.Port)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("FORAMA_DATABASE__URL", "postgres://localhost/forama")
	t.Setenv("FORAMA_NEWSLETTER__ADMIN_TOKEN", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Newsletter.AdminToken)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing database url",
			yaml:    "newsletter:\n  admin_token: secret\n",
			wantErr: "database.url is required",
		},
		{
			name:    "missing admin token",
			yaml:    "database:\n  url: postgres://localhost/forama\n",
			wantErr: "newsletter.admin_token is required",
		},
		{
			name: "non-positive batch size",
			yaml: `
database:
  url: postgres://localhost/forama
newsletter:
  admin_token: secret
  batch_size: 0
`,
			wantErr: "batch_size must be positive",
		},
		{
			name: "email enabled without host",
			yaml: `
database:
  url: postgres://localhost/forama
newsletter:
  admin_token: secret
  email:
    enabled: true
`,
			wantErr: "smtp_host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
