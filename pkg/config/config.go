package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "wishboard"

// Environment variable names, exported for tests and documentation.
const (
	EnvAppEnv       = "WISHBOARD_APP_ENV"
	EnvPort         = "WISHBOARD_APP_PORT"
	EnvLogLevel     = "WISHBOARD_LOG_LEVEL"
	EnvAdminUser    = "WISHBOARD_ADMIN_USER"
	EnvAdminPass    = "WISHBOARD_ADMIN_PASS"
	EnvSessionToken = "WISHBOARD_SESSION_TOKEN"
	EnvStoreBaseURL = "WISHBOARD_STORE_BASE_URL"
	EnvRedisURL     = "WISHBOARD_REDIS_URL"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	Admin     AdminConfig
	Store     StoreConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WISHBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"WISHBOARD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WISHBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WISHBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AdminConfig is the single shared-secret checkpoint gating privileged routes.
// The session token is static: login exchanges the credential pair for it.
type AdminConfig struct {
	User         string `envconfig:"WISHBOARD_ADMIN_USER" required:"true"`
	Pass         string `envconfig:"WISHBOARD_ADMIN_PASS" required:"true"`
	SessionToken string `envconfig:"WISHBOARD_SESSION_TOKEN" required:"true"`
}

// StoreConfig points at the external flat-document store holding the board.
type StoreConfig struct {
	BaseURL    string        `envconfig:"WISHBOARD_STORE_BASE_URL" required:"true"`
	Collection string        `envconfig:"WISHBOARD_STORE_COLLECTION" default:"wishlist"`
	Timeout    time.Duration `envconfig:"WISHBOARD_STORE_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WISHBOARD_CORS_ORIGINS" default:"*"`
}

// RedisConfig is optional; an empty URL disables login throttling.
type RedisConfig struct {
	URL          string        `envconfig:"WISHBOARD_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"WISHBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WISHBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WISHBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"WISHBOARD_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"WISHBOARD_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}
