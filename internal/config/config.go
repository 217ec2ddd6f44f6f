package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the server and CLI.
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Session SessionConfig
	Events  EventsConfig
	Logger  LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	RequestTimeoutSeconds int
}

// StoreConfig selects and configures the employee repository.
type StoreConfig struct {
	Driver      string // sqlite, postgres or memory
	SQLitePath  string
	PostgresDSN string
	QueueSize   int
}

// SessionConfig selects where in-progress drafts live.
type SessionConfig struct {
	Backend       string // memory or redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTLMinutes    int
	CookieName    string
}

// EventsConfig configures commit fan-out.
type EventsConfig struct {
	RedisChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "HRnet"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", ""),
			Port:                  getEnv("PORT", "8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath:  getEnv("DB_PATH", "hrnet.db"),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
			QueueSize:   getEnvAsInt("STORE_QUEUE_SIZE", 64),
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
			RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       redisDB,
			TTLMinutes:    getEnvAsInt("SESSION_TTL_MINUTES", 120),
			CookieName:    getEnv("SESSION_COOKIE", "hrnet_form"),
		},
		Events: EventsConfig{
			RedisChannel: os.Getenv("EVENTS_REDIS_CHANNEL"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Store.Driver)
	}
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Store.QueueSize <= 0 {
		return fmt.Errorf("STORE_QUEUE_SIZE must be positive")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns how long an untouched draft survives.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
