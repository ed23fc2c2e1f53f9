package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// SlogManager manages slog-based logging with optional OTel integration.
// Dynamic callbacks inject the current session state into every record.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider

	// Dynamic state callbacks, set by the host wiring once services exist.
	GetSessionID   func() string
	GetFarmName    func() string
	IsUsingLocalDB func() bool
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system with file and optional OTel output.
// If provider is nil, OTel logging is disabled.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider) {
	lvl := parseLevel(level)
	m.logProvider = provider

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler

	// Console handler
	handlers = append(handlers, slog.NewTextHandler(os.Stdout, handlerOpts))

	// File handler
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	// OTel handler (if provider is available)
	if provider != nil {
		otelHandler := otelslog.NewHandler("tractor-extension", otelslog.WithLoggerProvider(provider))
		handlers = append(handlers, otelHandler)
	}

	multiHandler := NewMultiHandler(handlers...)

	// Wrap with session context so every record carries the run state.
	contextHandler := NewContextHandler(multiHandler, m.sessionAttrs)

	m.logger = slog.New(contextHandler)
	m.logger.Info("Logging initialized", "level", level)
}

// sessionAttrs gathers the dynamic per-record attributes.
func (m *SlogManager) sessionAttrs() []slog.Attr {
	var attrs []slog.Attr
	if m.GetSessionID != nil {
		if id := m.GetSessionID(); id != "" {
			attrs = append(attrs, slog.String("sessionId", id))
		}
	}
	if m.GetFarmName != nil {
		if farm := m.GetFarmName(); farm != "" {
			attrs = append(attrs, slog.String("farm", farm))
		}
	}
	if m.IsUsingLocalDB != nil && m.IsUsingLocalDB() {
		attrs = append(attrs, slog.Bool("localDb", true))
	}
	return attrs
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// WriteLog writes a log entry with the specified handler name, data, and level.
func (m *SlogManager) WriteLog(handlerName, data, level string) {
	if m.logger == nil {
		return
	}

	lvl := parseLevel(level)

	switch lvl {
	case slog.LevelDebug:
		m.logger.Debug(data, "handler", handlerName)
	case slog.LevelInfo:
		m.logger.Info(data, "handler", handlerName)
	case slog.LevelWarn:
		m.logger.Warn(data, "handler", handlerName)
	case slog.LevelError:
		m.logger.Error(data, "handler", handlerName)
	default:
		m.logger.Info(data, "handler", handlerName)
	}
}
