package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "nearbuy"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Environment variable names shared between Load and the test helpers.
const (
	EnvAppEnv          = "NEARBUY_APP_ENV"
	EnvPort            = "NEARBUY_APP_PORT"
	EnvUpstreamBaseURL = "NEARBUY_UPSTREAM_BASE_URL"
	EnvRedisURL        = "NEARBUY_REDIS_URL"
	EnvSessionBackend  = "NEARBUY_SESSION_BACKEND"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Session       SessionConfig
	Redis         RedisConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NEARBUY_APP_ENV" required:"true"`
	Port         string `envconfig:"NEARBUY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NEARBUY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEARBUY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the marketplace REST backend.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"NEARBUY_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"NEARBUY_UPSTREAM_TIMEOUT" default:"10s"`
}

// SessionConfig controls how storefront session tokens are persisted.
type SessionConfig struct {
	Backend    string        `envconfig:"NEARBUY_SESSION_BACKEND" default:"redis"`
	CookieName string        `envconfig:"NEARBUY_SESSION_COOKIE" default:"nearbuy_session"`
	TokenTTL   time.Duration `envconfig:"NEARBUY_SESSION_TOKEN_TTL" default:"720h"`
}

func (s SessionConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(s.Backend), SessionBackendRedis)
}

func (s SessionConfig) validate(redis RedisConfig) error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	switch backend {
	case SessionBackendRedis:
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("%s or NEARBUY_REDIS_ADDR is required when %s is %q", EnvRedisURL, EnvSessionBackend, SessionBackendRedis)
		}
		return nil
	case SessionBackendMemory:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q", EnvSessionBackend, SessionBackendRedis, SessionBackendMemory)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"NEARBUY_REDIS_URL"`
	Address      string        `envconfig:"NEARBUY_REDIS_ADDR"`
	Password     string        `envconfig:"NEARBUY_REDIS_PASSWORD"`
	DB           int           `envconfig:"NEARBUY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NEARBUY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NEARBUY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NEARBUY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEARBUY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEARBUY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NEARBUY_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"NEARBUY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"NEARBUY_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"NEARBUY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"NEARBUY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterLimit      int           `envconfig:"NEARBUY_AUTH_RATE_LIMIT_REGISTER_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"NEARBUY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}
