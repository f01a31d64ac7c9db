package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLiteFromEnvironment(t *testing.T) {
	t.Setenv("GHOST_DB_DRIVER", "sqlite")
	t.Setenv("GHOST_DB_PATH", "/tmp/vault.db")
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("GHOST_SWEEP_INTERVAL", "2m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/vault.db", cfg.DSN())
	assert.Equal(t, "gh-token", cfg.GitHub.Token)
	assert.Equal(t, 2*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, "submission", cfg.SubmissionPolicy)
	assert.Equal(t, 3, cfg.GitHub.Retry.MaxRetries)
}

func TestLoad_PostgresRequiresConnectionString(t *testing.T) {
	t.Setenv("GHOST_DB_DRIVER", "postgres")
	t.Setenv("GHOST_DB_CONNECTION_STRING", "")
	t.Setenv("DB_CONNECTION_STRING", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ghost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
db:
  driver: sqlite
  path: vault.db
scoring:
  submission_policy: detailed
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "detailed", cfg.SubmissionPolicy)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", SessionTTL: time.Hour}
	assert.Error(t, cfg.Validate())
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("GHOST_DB_DRIVER", "postgres")
	t.Setenv("GHOST_DB_CONNECTION_STRING", "")
	t.Setenv("DB_CONNECTION_STRING", "")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Error(t, cfg.Validate())
}

func TestLoad_GitHubSection(t *testing.T) {
	t.Setenv("GHOST_GITHUB_MAX_RETRIES", "5")
	dir := t.TempDir()
	path := filepath.Join(dir, "ghost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  driver: sqlite
  path: vault.db
github:
  api_base_url: http://localhost:9999/
  initial_backoff: 250ms
  max_backoff: 10s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/", cfg.GitHub.APIBaseURL)
	assert.Equal(t, 5, cfg.GitHub.Retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.GitHub.Retry.InitialBackoff)
	assert.Equal(t, 10*time.Second, cfg.GitHub.Retry.MaxBackoff)
	assert.Equal(t, 2.0, cfg.GitHub.Retry.RetryMultiplier)
}

func TestGitHubConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GitHubConfig)
		wantErr bool
	}{
		{"defaults", func(c *GitHubConfig) {}, false},
		{"relative base url", func(c *GitHubConfig) { c.APIBaseURL = "api.github.com" }, true},
		{"negative retries", func(c *GitHubConfig) { c.Retry.MaxRetries = -1 }, true},
		{"backoff inverted", func(c *GitHubConfig) { c.Retry.MaxBackoff = time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGitHubConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
