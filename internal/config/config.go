package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
)

type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	JWTExpiryHours int

	Database DatabaseConfig
	SMTP     SMTPConfig

	BackupDir       string
	BackupRetention int

	LogFile       string
	LogFileEnable bool
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads configuration from the environment. godotenv is expected to
// have populated it from .env already.
func Load() *Config {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		Env:            getenv("APP_ENV", "development"),
		JWTSecret:      getenv("JWT_SECRET", "change-me"),
		JWTExpiryHours: cast.ToInt(getenv("JWT_EXPIRY_HOURS", "72")),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "retailpos"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "localhost"),
			Port:     cast.ToInt(getenv("SMTP_PORT", "587")),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenv("SMTP_FROM", "no-reply@localhost"),
		},
		BackupDir:       getenv("BACKUP_DIR", "backups"),
		BackupRetention: cast.ToInt(getenv("BACKUP_RETENTION", "10")),
		LogFile:         getenv("LOG_FILE", "logs/server.log"),
		LogFileEnable:   cast.ToBool(getenv("LOG_FILE_ENABLE", "false")),
	}
	return cfg
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host, c.Database.User, c.Database.Password,
		c.Database.Name, c.Database.Port, c.Database.SSLMode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
