package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/pkg/mailx"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment
type Config struct {
	Port string

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
	}

	AWS struct {
		Region string
		Bucket string
		Prefix string
	}

	JWT struct {
		Secret string
		Issuer string
		TTL    time.Duration
	}

	OpenAI struct {
		APIKey string
		Model  string
	}

	SMTP        mailx.SMTPConfig
	MailWorkers int

	LogLevel  string
	LogFormat string
}

// LoadConfig reads an optional .env file and then the environment
func LoadConfig(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			logx.Warnf("could not load %s: %v", envFile, err)
		}
	}

	cfg := &Config{}
	cfg.Port = envString("PORT", "8080")

	cfg.DB.Host = envString("DB_HOST", "localhost")
	cfg.DB.Port = envString("DB_PORT", "5432")
	cfg.DB.User = envString("DB_USER", "postgres")
	cfg.DB.Password = envString("DB_PASS", "")
	cfg.DB.Name = envString("DB_NAME", "jobboard")
	cfg.DB.SSLMode = envString("DB_SSLMODE", "disable")

	cfg.Redis.Addr = envString("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = envString("REDIS_PASS", "")

	cfg.AWS.Region = envString("AWS_REGION", "us-east-1")
	cfg.AWS.Bucket = envString("AWS_BUCKET", "")
	cfg.AWS.Prefix = envString("AWS_PREFIX", "uploads")

	cfg.JWT.Secret = envString("JWT_SECRET", "")
	cfg.JWT.Issuer = envString("JWT_ISSUER", "jobboard")
	cfg.JWT.TTL = time.Duration(envInt("JWT_TTL_MINUTES", 60*24)) * time.Minute

	cfg.OpenAI.APIKey = envString("OPENAI_API_KEY", "")
	cfg.OpenAI.Model = envString("OPENAI_MODEL", "")

	cfg.SMTP = mailx.SMTPConfig{
		Host:     envString("SMTP_HOST", ""),
		Port:     envInt("SMTP_PORT", 587),
		From:     envString("SMTP_EMAIL", ""),
		Password: envString("SMTP_PASSWORD", ""),
		FromName: envString("SMTP_FROM_NAME", "Job Board"),
	}
	cfg.MailWorkers = envInt("MAIL_WORKERS", 2)

	cfg.LogLevel = envString("LOG_LEVEL", "info")
	cfg.LogFormat = envString("LOG_FORMAT", "json")

	return cfg
}

// DSN is the lib/pq connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

// MailEnabled reports whether SMTP delivery is configured
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logx.Warnf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
