package config

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const devSessionSecret = "dev-secret-only"

type Config struct {
	DBDriver    string
	DSN         string
	AutoMigrate bool
	Seed        bool

	SessionSecret string
	AppEnv        string
	AppPort       string
	FrontendURL   string
	StaticDir     string

	Mail  MailConfig
	Kafka KafkaConfig

	SeedAdminEmail    string
	SeedAdminPassword string
}

type MailConfig struct {
	Transport    string // smtp | kafka | log
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	From         string
	FromName     string
}

type KafkaConfig struct {
	Broker   string
	Topic    string
	GroupID  string
	Username string
	Password string
}

// Load reads the API configuration and exits when the database is not configured.
func Load() Config {
	cfg := load()
	if err := cfg.validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	return cfg
}

// LoadRelay reads the configuration of the mail relay, which needs Kafka
// and SMTP but no database.
func LoadRelay() Config {
	cfg := load()
	if err := cfg.validateRelay(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	return cfg
}

func load() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	} else {
		log.Println("✅ .env file loaded successfully!")
	}

	cfg := Config{
		DBDriver:      getenv("DB_DRIVER", "postgres"),
		DSN:           os.Getenv("DATABASE_URL"),
		AutoMigrate:   getbool("DB_AUTO_MIGRATE", true),
		Seed:          getbool("DB_SEED", false),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AppEnv:        getenv("APP_ENV", "development"),
		AppPort:       getenv("APP_PORT", "3000"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:3000"),
		StaticDir:     getenv("STATIC_DIR", "public"),
		Mail: MailConfig{
			Transport:    strings.ToLower(getenv("MAIL_TRANSPORT", "log")),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getenv("SMTP_PORT", "587"),
			SMTPUser:     os.Getenv("SMTP_USER"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			From:         os.Getenv("MAIL_FROM"),
			FromName:     getenv("MAIL_FROM_NAME", "Gestión de Proyectos"),
		},
		Kafka: KafkaConfig{
			Broker:   os.Getenv("KAFKA_BROKER"),
			Topic:    getenv("KAFKA_TOPIC", "correos"),
			GroupID:  getenv("KAFKA_GROUP_ID", "mailer"),
			Username: os.Getenv("KAFKA_USERNAME"),
			Password: os.Getenv("KAFKA_PASSWORD"),
		},
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if cfg.SessionSecret == "" && !cfg.Production() {
		log.Println("⚠️ SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = devSessionSecret
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.SMTPUser
	}

	return cfg
}

func (c Config) validate() error {
	if c.DSN == "" {
		return errors.New("DATABASE_URL not set in environment")
	}
	if c.Production() {
		if c.SessionSecret == "" {
			return errors.New("SESSION_SECRET is required in production")
		}
		if c.Mail.Transport == "log" {
			return errors.New("MAIL_TRANSPORT=log is not allowed in production")
		}
	}
	return nil
}

func (c Config) validateRelay() error {
	if c.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER not set in environment")
	}
	if c.Production() && c.Mail.SMTPHost == "" {
		return errors.New("SMTP_HOST is required in production")
	}
	return nil
}

// Production reports whether cookies must be sent over HTTPS only.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// SameSite returns the cookie SameSite mode for the current environment.
// The dashboard is served from another origin in production, so the
// session cookie has to travel on cross-site requests there.
func (c Config) SameSite() http.SameSite {
	if c.Production() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getbool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "si":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
