// Package config manages environment configuration.
//
// It reads variables from the process environment (optionally seeded from a
// `.env` file), unmarshals them into structured Go types, and validates that
// required values are present so the app fails fast on bad or missing
// configuration.
//
// Env vars use the RELIVATOR_ prefix and dot-delimited nesting, e.g.
// RELIVATOR_SERVER.PORT maps to Config.Server.Port.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a local `.env` file into the process
	// environment before any var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Cache         CacheConfig          `koanf:"cache"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// stored as whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// ArtificialLatencyMS injects a fixed delay (milliseconds) into every
	// procedure invocation. Only honored when Primary.Env is "local"; used
	// to surface missing loading states during development.
	ArtificialLatencyMS int `koanf:"artificial_latency_ms"`

	// RateLimitRPS is the per-IP request rate. Zero falls back to
	// DefaultRateLimitRPS.
	RateLimitRPS float64 `koanf:"rate_limit_rps"`
}

// DefaultRateLimitRPS is applied when server.rate_limit_rps is unset.
const DefaultRateLimitRPS = 20

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// CacheConfig tunes the tag-addressable response cache.
type CacheConfig struct {
	// TTLSeconds is the default entry lifetime for cached procedure
	// results. Zero falls back to DefaultCacheTTLSeconds.
	TTLSeconds int `koanf:"ttl_seconds"`
}

// DefaultCacheTTLSeconds is applied when cache.ttl_seconds is unset.
const DefaultCacheTTLSeconds = 300

// AuthConfig stores authentication secrets (the Clerk secret key).
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig stores third-party service credentials.
type IntegrationConfig struct {
	// ResendAPIKey authorizes the transactional email client. Empty means
	// emails are rendered and logged instead of sent (local development).
	ResendAPIKey string `koanf:"resend_api_key"`

	// EmailFrom is the sender address for transactional email.
	EmailFrom string `koanf:"email_from"`

	// AppBaseURL is the public dashboard origin used when building links
	// embedded in outgoing email.
	AppBaseURL string `koanf:"app_base_url"`
}

// New loads, validates, and returns the application configuration.
func New() (*Config, error) {
	return loadConfig()
}

// loadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, and applies observability defaults.
//
// Load failures are fatal: there is no sensible way to continue without
// configuration, so the process exits immediately with a logged cause.
func loadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("RELIVATOR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RELIVATOR_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Cache.TTLSeconds <= 0 {
		mainConfig.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}

	if mainConfig.Server.RateLimitRPS <= 0 {
		mainConfig.Server.RateLimitRPS = DefaultRateLimitRPS
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry always carries
	// consistent identification regardless of what was configured.
	mainConfig.Observability.ServiceName = "relivator"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// IsLocal reports whether the app runs in the local development environment.
// Dev-only behavior (artificial latency, SQL tracing) keys off this.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
