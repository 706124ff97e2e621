package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 8080
database:
  host: localhost
  port: 5432
  user: roofbox
  database: roofbox
mail:
  from: noreply@example.com
  to: info@example.com
jwt:
  secret: 0123456789abcdef0123456789abcdef
storage:
  upload_dir: /tmp/roofbox
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalYAML))
		require.NoError(t, err)

		assert.Equal(t, "log", cfg.Mail.Provider)
		assert.Equal(t, 10, cfg.Mail.TimeoutSeconds)
		assert.Equal(t, "Europe/Berlin", cfg.Booking.Timezone)
		assert.Equal(t, "Europe/Berlin", cfg.Location().String())
		assert.Equal(t, "0 0 7 * * *", cfg.Scheduler.PendingDigest)
		assert.Equal(t, "0 30 3 * * *", cfg.Scheduler.PurgeSessions)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 0, cfg.RateLimit.RequestsPerMinute)
		assert.Equal(t, "postgres://roofbox:@localhost:5432/roofbox?sslmode=disable", cfg.GetDatabaseConnectionString())
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("MAIL_PROVIDER", "sendgrid")
		t.Setenv("SENDGRID_API_KEY", "SG.test")

		cfg, err := Load(writeConfig(t, minimalYAML))
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "sendgrid", cfg.Mail.Provider)
		assert.Equal(t, "SG.test", cfg.Mail.SendGridAPIKey)
	})

	t.Run("SendGridWithoutKey", func(t *testing.T) {
		t.Setenv("MAIL_PROVIDER", "sendgrid")
		_, err := Load(writeConfig(t, minimalYAML))
		assert.ErrorContains(t, err, "sendgrid api key is required")
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		t.Setenv("MAIL_PROVIDER", "pigeon")
		_, err := Load(writeConfig(t, minimalYAML))
		assert.ErrorContains(t, err, "unknown mail provider")
	})

	t.Run("ShortSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := Load(writeConfig(t, minimalYAML))
		assert.ErrorContains(t, err, "at least 32 characters")
	})

	t.Run("BadTimezone", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimalYAML+"booking:\n  timezone: Mars/Olympus\n"))
		assert.ErrorContains(t, err, "invalid booking timezone")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}

func TestRateLimitBurstDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+"rate_limit:\n  requests_per_minute: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.RateLimit.Burst)
}

func TestRouteSecurity(t *testing.T) {
	assert.Equal(t, SecurityPublic, RouteSecurity("rentals.submit"))
	assert.Equal(t, SecuritySession, RouteSecurity("auth.session"))
	assert.Equal(t, SecurityAdmin, RouteSecurity("admin.rentals.status"))
	assert.Equal(t, SecurityAdmin, RouteSecurity("unknown.route"))
}
