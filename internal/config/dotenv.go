package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DateLayout is the MM/DD/YYYY form used by every date field in the app.
const DateLayout = "01/02/2006"

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     string
	DatabaseURL              string
	UploadFolder             string
	MediaURLPrefix           string
	DeployDate               string
	MaxUploadBytes           int64
	SessionBackend           string
	SessionTTLSeconds        int
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		Port:                     "8080",
		UploadFolder:             "static/media",
		MediaURLPrefix:           "/static/media/",
		DeployDate:               "01/01/2016",
		MaxUploadBytes:           64 << 20,
		SessionBackend:           "memory",
		SessionTTLSeconds:        12 * 60 * 60,
		RedisAddr:                "localhost:6379",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
		cfg.SessionBackend = "db"
	}
	if raw := os.Getenv("UPLOAD_FOLDER"); raw != "" {
		cfg.UploadFolder = raw
	}
	if raw := os.Getenv("DEPLOY_DATE"); raw != "" {
		if _, err := ParseDate(raw); err == nil {
			cfg.DeployDate = raw
		}
	}
	if raw := os.Getenv("MAX_UPLOAD_MB"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxUploadBytes = int64(value) << 20
		}
	}
	if raw := os.Getenv("SESSION_BACKEND"); raw != "" {
		switch raw {
		case "memory", "db", "redis":
			cfg.SessionBackend = raw
		}
	}
	if raw := os.Getenv("SESSION_TTL_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SessionTTLSeconds = value
		}
	}
	if raw := os.Getenv("REDIS_ADDR"); raw != "" {
		cfg.RedisAddr = raw
	}
	if raw := os.Getenv("REDIS_PASSWORD"); raw != "" {
		cfg.RedisPassword = raw
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.RedisDB = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	return cfg
}

// ParseDate parses a MM/DD/YYYY date in local time.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.Local)
}

// DeployTime returns the configured deployment date, falling back to the default.
func (c Config) DeployTime() time.Time {
	if value, err := ParseDate(c.DeployDate); err == nil {
		return value
	}
	value, _ := ParseDate(Default().DeployDate)
	return value
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}
