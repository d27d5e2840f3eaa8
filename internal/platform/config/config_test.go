package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults は設定ファイルも環境変数もない場合にデフォルト値が使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 60*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, 5, cfg.Auth.MaxSessions)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Addr)
}

// TestLoad_EnvOverrides はFINBAR_*環境変数がデフォルト値を上書きすることを検証します。
func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FINBAR_DB_DRIVER", "postgres")
	t.Setenv("FINBAR_DB_HOST", "db.internal")
	t.Setenv("FINBAR_JWT_SECRET", "s3cret")
	t.Setenv("FINBAR_JWT_ACCESS_TTL", "30m")
	t.Setenv("FINBAR_REDIS_ADDR", "localhost:6379")
	t.Setenv("FINBAR_AUTH_MAX_SESSIONS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Auth.MaxSessions)
}

// TestLoadFromFile はYAMLファイルの値が読み込まれ、環境変数がさらに優先されることを検証します。
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finbar.yaml")
	yaml := `
server:
  addr: ":9090"
db:
  driver: sqlite
  sqlite_path: /tmp/finbar-test.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("FINBAR_LOG_LEVEL", "warn")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/finbar-test.db", cfg.DB.SQLitePath)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			DB:   DBConfig{Driver: "postgres"},
			JWT:  JWTConfig{AccessTTL: time.Minute},
			Auth: AuthConfig{RefreshTTL: time.Hour, MaxSessions: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, true},
		{"zero access ttl", func(c *Config) { c.JWT.AccessTTL = 0 }, true},
		{"negative refresh ttl", func(c *Config) { c.Auth.RefreshTTL = -time.Hour }, true},
		{"no sessions allowed", func(c *Config) { c.Auth.MaxSessions = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
