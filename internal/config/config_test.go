package config

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/proyectos")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("MAIL_TRANSPORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, "log", cfg.Mail.Transport)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.Production())
	assert.Equal(t, http.SameSiteLaxMode, cfg.SameSite())
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/proyectos")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("MAIL_TRANSPORT", "KAFKA")
	t.Setenv("SMTP_USER", "relay@uni.edu")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	require.True(t, cfg.Production())
	assert.Equal(t, http.SameSiteNoneMode, cfg.SameSite())
	assert.Equal(t, "s3cr3t", cfg.SessionSecret)
	assert.Equal(t, "kafka", cfg.Mail.Transport)
	assert.Equal(t, "relay@uni.edu", cfg.Mail.From)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadRelayIgnoresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKER", "broker:9092")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("APP_ENV", "")

	cfg := LoadRelay()

	assert.Equal(t, "broker:9092", cfg.Kafka.Broker)
	assert.Equal(t, "correos", cfg.Kafka.Topic)
	assert.Equal(t, "mailer", cfg.Kafka.GroupID)
}

func TestProductionRejectsDevelopmentFallbacks(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/proyectos")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("MAIL_TRANSPORT", "smtp")

	cfg := load()
	assert.Empty(t, cfg.SessionSecret, "no development secret in production")
	assert.ErrorContains(t, cfg.validate(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("MAIL_TRANSPORT", "")
	cfg = load()
	assert.ErrorContains(t, cfg.validate(), "MAIL_TRANSPORT")

	t.Setenv("MAIL_TRANSPORT", "smtp")
	cfg = load()
	assert.NoError(t, cfg.validate())
}

func TestValidateRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg := load()
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.ErrorContains(t, cfg.validate(), "DATABASE_URL")
}

func TestRelayRequiresSMTPInProduction(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "broker:9092")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SMTP_HOST", "")

	cfg := load()
	assert.ErrorContains(t, cfg.validateRelay(), "SMTP_HOST")

	t.Setenv("SMTP_HOST", "smtp.uni.edu")
	cfg = load()
	assert.NoError(t, cfg.validateRelay())
}
