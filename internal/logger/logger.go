// Package logger configures the application's logging and observability.
//
// It builds zerolog loggers (JSON or console per config), initializes the
// New Relic agent when a license key is configured, and forwards
// application logs to New Relic so log lines correlate with traces.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/config"
)

// LoggerService owns the New Relic application instance. When New Relic is
// not configured, the service still exists but GetApplication returns nil,
// and every consumer degrades to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes New Relic from config. A missing license key
// is not an error: it simply disables the agent.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if obs == nil || obs.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing new relic application: %w", err)
	}

	return &LoggerService{nrApp: app}, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes agent data. Safe to call when New Relic is disabled.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls != nil && ls.nrApp != nil {
		ls.nrApp.Shutdown(timeout)
	}
}

// New builds the application's main zerolog logger.
//
// Format and level come from config. When New Relic log forwarding is
// active, log output is wrapped so each line is decorated with linking
// metadata and shipped to the agent.
func New(cfg *config.Config, ls *LoggerService) *zerolog.Logger {
	level := parseLevel(cfg.Observability.Logging.Level)

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	if app := ls.GetApplication(); app != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		w := zerologWriter.New(out, app)
		out = &w
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext returns a child logger carrying the transaction's trace
// and span ids so log lines can be joined with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetLinkingMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger pgx's tracelog adapter writes SQL query
// logs to. Console format: SQL tracing is a local-development concern.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// Pgx tracelog levels, mirrored here so callers don't need the tracelog
// import just to pick a verbosity.
const (
	pgxTraceLogLevelNone  = 0
	pgxTraceLogLevelError = 2
	pgxTraceLogLevelWarn  = 3
	pgxTraceLogLevelInfo  = 4
	pgxTraceLogLevelDebug = 5
	pgxTraceLogLevelTrace = 6
)

// GetPgxTraceLogLevel maps a zerolog level onto pgx's tracelog levels.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return pgxTraceLogLevelTrace
	case zerolog.DebugLevel:
		return pgxTraceLogLevelDebug
	case zerolog.InfoLevel:
		return pgxTraceLogLevelInfo
	case zerolog.WarnLevel:
		return pgxTraceLogLevelWarn
	case zerolog.ErrorLevel:
		return pgxTraceLogLevelError
	default:
		return pgxTraceLogLevelNone
	}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
