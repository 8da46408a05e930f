package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Planner  PlannerConfig
	AMQP     AMQPConfig
	Trends   TrendsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type PlannerConfig struct {
	DefaultHorizonYears int
	MaxHorizonYears     int
	ExtendLockTTL       time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type TrendsConfig struct {
	ScrapeEnabled bool
	ScrapeBaseURL string
	ScrapeWorkers int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment. A .env file in the working directory is
// loaded first when present; variables already set take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", "localhost"),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         opt("DB_NAME", "skillpath"),
		DBUser:         opt("DB_USER", "postgres"),
		DBPassword:     opt("DB_PASSWORD", ""),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:  opt("GEMINI_API_KEY", ""),
		Model:   opt("GEMINI_MODEL", "gemini-2.0-flash"),
		Timeout: optDuration("GEMINI_TIMEOUT", 60*time.Second),
	}

	cfg.Planner = PlannerConfig{
		DefaultHorizonYears: optInt("PLANNER_DEFAULT_HORIZON_YEARS", 1),
		MaxHorizonYears:     optInt("PLANNER_MAX_HORIZON_YEARS", 5),
		ExtendLockTTL:       optDuration("EXTEND_LOCK_TTL", 2*time.Minute),
	}
	if cfg.Planner.DefaultHorizonYears < 1 {
		invalid = append(invalid, "PLANNER_DEFAULT_HORIZON_YEARS")
	}
	if cfg.Planner.MaxHorizonYears < cfg.Planner.DefaultHorizonYears {
		invalid = append(invalid, "PLANNER_MAX_HORIZON_YEARS")
	}

	cfg.AMQP = AMQPConfig{
		URL:      opt("AMQP_URL", ""),
		Exchange: opt("AMQP_EXCHANGE", "skillpath.events"),
	}

	cfg.Trends = TrendsConfig{
		ScrapeEnabled: optBool("TRENDS_SCRAPE_ENABLED", false),
		ScrapeBaseURL: opt("TRENDS_SCRAPE_BASE_URL", "https://dev.to"),
		ScrapeWorkers: optInt("TRENDS_SCRAPE_WORKERS", 2),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(c.App.Environment) {
	case "prod", "production":
		return true
	default:
		return false
	}
}
