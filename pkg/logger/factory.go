// Package logger builds slog loggers with routekit-friendly defaults:
// JSON or text output, static attributes, and context extractors that pull
// request-scoped values (request ID, environment) into every record.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/routekit/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format. Panics for invalid formats: logger
// misconfiguration should prevent startup rather than surface at runtime.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets a custom output destination; nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithHandlerOptions allows fine-grained control over slog behavior.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes
// from context. Nil extractors are filtered out.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue adds an extractor for a single context value, logged
// under name when present.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithDevelopment configures development defaults: text format, debug level.
func WithDevelopment(service string) Option {
	return presetOption(service, environment.Development, FormatText, slog.LevelDebug)
}

// WithProduction configures production defaults: JSON format, info level.
func WithProduction(service string) Option {
	return presetOption(service, environment.Production, FormatJSON, slog.LevelInfo)
}

// WithStaging configures staging defaults: JSON format, info level.
func WithStaging(service string) Option {
	return presetOption(service, environment.Staging, FormatJSON, slog.LevelInfo)
}

// WithEnvironment picks the preset matching the given environment name,
// defaulting to development.
func WithEnvironment(env string, service string) Option {
	return func(c *config) {
		switch env {
		case string(environment.Production), "prod":
			WithProduction(service)(c)
		case string(environment.Staging), "stage":
			WithStaging(service)(c)
		default:
			WithDevelopment(service)(c)
		}
	}
}

func presetOption(service string, env environment.Environment, format Format, level slog.Level) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = level
		c.format = format
		if c.output == nil {
			c.output = os.Stdout
		}
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", string(env)),
		)
	}
}

// SetAsDefault installs the logger as slog's process-wide default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level          slog.Level
	format         Format
	output         io.Writer
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	extractors     []ContextExtractor
}

// defaultConfig provides production-safe defaults: JSON format, INFO level.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger. The returned logger's handler is
// wrapped with a decorator that runs the context extractors on every record.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOptions
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewContextHandler(handler, cfg.extractors...))
}
