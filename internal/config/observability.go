package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: structured logging, New Relic APM, and periodic
// dependency health checks.
//
// It is optional at the root level; DefaultObservabilityConfig fills in
// sane local-development values when it is omitted.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces. It is forced to
	// "relivator" at load time.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment labels telemetry by environment (local, staging, production).
	Environment string `koanf:"environment" validate:"required"`

	// Logging controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging" validate:"required"`

	// NewRelic controls APM and tracing features.
	NewRelic NewRelicConfig `koanf:"new_relic"`

	// HealthChecks controls periodic dependency health checks.
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format: "json" or "console".
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold flags queries slower than this duration.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds New Relic APM configuration. An empty LicenseKey
// means "not configured": all instrumentation degrades to no-ops.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls periodic checks for dependencies.
type HealthChecksConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
	Checks   []string      `koanf:"checks"`
}

// DefaultObservabilityConfig provides defaults suitable for local
// development: console logs at debug level, New Relic disabled.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "relivator",
		Environment: "local",
		Logging: LoggingConfig{
			Level:              "debug",
			Format:             "console",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   false,
			DistributedTracingEnabled: false,
			DebugLogging:              false,
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate enforces constraints the struct tags cannot express.
func (o *ObservabilityConfig) Validate() error {
	switch o.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("observability: unknown log format %q", o.Logging.Format)
	}

	switch o.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability: unknown log level %q", o.Logging.Level)
	}

	if o.HealthChecks.Enabled {
		if o.HealthChecks.Interval < time.Second {
			return fmt.Errorf("observability: health check interval %s is below 1s", o.HealthChecks.Interval)
		}
		if o.HealthChecks.Timeout < time.Second {
			return fmt.Errorf("observability: health check timeout %s is below 1s", o.HealthChecks.Timeout)
		}
	}

	return nil
}
