// Package logger configures the application's structured logging.
//
// It builds zerolog loggers from the observability config and, when a
// New Relic license key is present, wraps the log output with the agent's
// zerolog writer so application logs are forwarded alongside traces.
package logger

import (
	"io"
	"os"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/config"
)

// LoggerService owns the optional New Relic application instance.
// A nil application means New Relic is disabled and every consumer
// degrades to plain zerolog.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes the New Relic agent when a license key is
// configured. Returns a service with a nil application otherwise.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	if cfg.Observability.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
	)
	if err != nil {
		return nil, err
	}

	return &LoggerService{nrApp: app}, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call when disabled.
func (s *LoggerService) Shutdown() {
	if s != nil && s.nrApp != nil {
		s.nrApp.Shutdown(0)
	}
}

// New builds the application logger from the observability config.
//
// Format "console" writes human-friendly output to stderr; anything else
// writes JSON to stdout. When New Relic log forwarding is active the JSON
// stream is wrapped with the agent's zerolog writer.
func New(cfg *config.Config, service *LoggerService) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	} else {
		out = os.Stdout
		if app := service.GetApplication(); app != nil {
			w := zerologWriter.New(os.Stdout, app)
			out = &w
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id so log lines can be correlated with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
