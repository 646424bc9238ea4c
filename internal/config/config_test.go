package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: medivault
  environment: test

server:
  port: 9000

database:
  path: ":memory:"

auth:
  jwt_secret: test-secret
  token_ttl: 30

notify:
  transport: smtp
  smtp:
    host: mail.clinic.test
    from: noreply@clinic.test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "medivault", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30, cfg.Auth.TokenTTL)
	assert.Equal(t, "smtp", cfg.Notify.Transport)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: ":memory:"

auth:
  jwt_secret: test-secret

notify:
  transport: none
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.RateLimit.Burst)
	assert.Equal(t, 60, cfg.Auth.TokenTTL)
	assert.NotZero(t, cfg.Notify.Timeout)
	assert.NotZero(t, cfg.Redis.DoctorsTTL)
	assert.Equal(t, "09:00", cfg.Reminder.Time)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "from-env")

	path := writeConfig(t, `
database:
  path: ":memory:"

auth:
  jwt_secret: ${TEST_JWT_SECRET}

notify:
  transport: none
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Path: ":memory:"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Notify:   NotifyConfig{Transport: "none"},
		}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := base()
		cfg.Database.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("placeholder jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = "CHANGE_ME"
		assert.Error(t, cfg.Validate())
	})

	t.Run("smtp without host", func(t *testing.T) {
		cfg := base()
		cfg.Notify.Transport = "smtp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("telegram without token", func(t *testing.T) {
		cfg := base()
		cfg.Notify.Transport = "telegram"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown transport", func(t *testing.T) {
		cfg := base()
		cfg.Notify.Transport = "carrier-pigeon"
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis enabled without address", func(t *testing.T) {
		cfg := base()
		cfg.Redis.Enabled = true
		assert.Error(t, cfg.Validate())
	})
}
