package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the monitor.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	Redmine      RedmineConfig
	Monitor      MonitorConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// RedmineConfig holds connection values for the issue tracker.
type RedmineConfig struct {
	BaseURL        string
	APIKey         string
	ProjectID      string
	StatusFilter   string
	TimeoutSeconds int
	// InProgressStatus and ResolvedStatus are the tracker status names whose
	// first transition closes the response and resolution windows.
	InProgressStatus string
	ResolvedStatus   string
	// CustomerField is the user custom field carrying the customer name;
	// EstimateField is the issue custom field carrying the estimated date.
	CustomerField string
	EstimateField string
}

// MonitorConfig drives the evaluation loop.
type MonitorConfig struct {
	SLAFile      string
	RefreshSpec  string
	WorkerPool   int
	CacheTTLMins int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values for the breach log.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// NotificationConfig holds the breach webhook endpoint.
type NotificationConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "monitor-neuratek"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Redmine: RedmineConfig{
			BaseURL:          os.Getenv("REDMINE_URL"),
			APIKey:           os.Getenv("REDMINE_API_KEY"),
			ProjectID:        getEnv("REDMINE_PROJECT_ID", ""),
			StatusFilter:     getEnv("REDMINE_STATUS_FILTER", "open"),
			TimeoutSeconds:   getEnvAsInt("REDMINE_TIMEOUT_SECONDS", 15),
			InProgressStatus: getEnv("REDMINE_STATUS_IN_PROGRESS", "In Progress"),
			ResolvedStatus:   getEnv("REDMINE_STATUS_RESOLVED", "Resolved"),
			CustomerField:    getEnv("REDMINE_CUSTOMER_FIELD", "Customer"),
			EstimateField:    getEnv("REDMINE_ESTIMATE_FIELD", "Estimated date"),
		},
		Monitor: MonitorConfig{
			SLAFile:      getEnv("SLA_CONFIG_FILE", "sla.yaml"),
			RefreshSpec:  getEnv("MONITOR_REFRESH_SPEC", "@every 30s"),
			WorkerPool:   getEnvAsInt("MONITOR_WORKER_POOL", 8),
			CacheTTLMins: getEnvAsInt("MONITOR_CACHE_TTL_MINUTES", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Notification: NotificationConfig{
			WebhookURL:     getEnv("NOTIFY_WEBHOOK_URL", ""),
			TimeoutSeconds: getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 10),
		},
	}

	return cfg, nil
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

// Timeout returns the tracker client timeout duration.
func (r RedmineConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long a fetched snapshot batch stays usable as a
// fallback.
func (m MonitorConfig) CacheTTL() time.Duration {
	if m.CacheTTLMins <= 0 {
		return time.Hour
	}
	return time.Duration(m.CacheTTLMins) * time.Minute
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

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
