package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configKeys are cleared before every Load test so the host environment
// cannot leak in.
var configKeys = []string{
	"ENV", "LOG_LEVEL", "DATA_PATH", "DB_DRIVER", "DB_PATH", "DATABASE_URL",
	"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "FOLDERS_STRICT_HIERARCHY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// load runs Load with a nonexistent .env file unless args name one.
func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	base := []string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}
	return Load(append(base, args...))
}

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{Driver: DriverSQLite, DBPath: "/data/foldnote.db"},
		Server:  ServerConfig{Port: "8080", CORSAllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(home, "Foldnote", "data"), cfg.Storage.DataPath)
	assert.Equal(t, filepath.Join(home, "Foldnote", "data", "foldnote.db"), cfg.Storage.DBPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 20.0, cfg.RateLimit.RPS)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.False(t, cfg.Folders.StrictHierarchy)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"LOG_LEVEL=debug\nSERVER_PORT=7000\nRATE_LIMIT_BURST=5\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"LOG_LEVEL", "SERVER_PORT", "RATE_LIMIT_BURST"} {
			_ = os.Unsetenv(k) //nolint:errcheck // Test cleanup
		}
	})

	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_PATH", dir)

	cfg, err := Load([]string{"-env-file", envFile, "-port", "9100", "-strict-folders", "true"})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port, "flag beats env")
	assert.Equal(t, "debug", cfg.Logger.Level, ".env beats default")
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, filepath.Join(dir, "foldnote.db"), cfg.Storage.DBPath)
	assert.True(t, cfg.Folders.StrictHierarchy)
}

func TestLoad_EnvBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=7000\n"), 0o600))
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_PATH", dir)

	cfg, err := Load([]string{"-env-file", envFile})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoad_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("DB_DRIVER", "POSTGRES")

	_, err := load(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/foldnote")
	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

func TestLoad_CORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", t.TempDir())

	cfg, err := load(t, "-cors-origins", "https://a.example, https://b.example,,")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad read timeout", []string{"-read-timeout", "soon"}},
		{"bad write timeout", []string{"-write-timeout", "10"}},
		{"bad idle timeout", []string{"-idle-timeout", "x"}},
		{"bad rps", []string{"-rate-limit-rps", "fast"}},
		{"bad burst", []string{"-rate-limit-burst", "1.5"}},
		{"bad env", []string{"-env", "test"}},
		{"bad driver", []string{"-db-driver", "mysql"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATA_PATH", t.TempDir())

			_, err := load(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLoad_RelativePathsAreAbsolute(t *testing.T) {
	clearEnv(t)

	cfg, err := load(t, "-data-path", "relative/data", "-db-path", "other.db")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Storage.DataPath))
	assert.True(t, filepath.IsAbs(cfg.Storage.DBPath))
	assert.Equal(t, "other.db", filepath.Base(cfg.Storage.DBPath))
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"warning", true},
		{"ERROR", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_Server(t *testing.T) {
	for _, port := range []string{"0", "65536", "http", ""} {
		cfg := validConfig()
		cfg.Server.Port = port
		assert.Error(t, cfg.Validate(), "port %q", port)
	}

	cfg := validConfig()
	cfg.Server.CORSAllowedOrigins = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_RateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{RPS: 0, Burst: 0}
	assert.NoError(t, cfg.Validate(), "zero rps disables limiting")
	assert.False(t, cfg.RateLimit.Enabled())

	cfg.RateLimit = RateLimitConfig{RPS: -1, Burst: 1}
	assert.Error(t, cfg.Validate())

	cfg.RateLimit = RateLimitConfig{RPS: 5, Burst: 0}
	assert.Error(t, cfg.Validate())
}

func TestValidate_Storage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DBPath = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Storage = StorageConfig{Driver: DriverPostgres}
	assert.Error(t, cfg.Validate())

	cfg.Storage.DatabaseURL = "postgres://localhost/foldnote"
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/notes", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("/a/b/../c", "")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("FOLDNOTE_TEST_BOOL", "YES")
	assert.True(t, getBoolConfigValue("", "FOLDNOTE_TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "FOLDNOTE_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "FOLDNOTE_TEST_UNSET", true))
}
