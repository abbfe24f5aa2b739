package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/iotx/contactrelay/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

// WithLevel sets the minimum level. It wins over the environment default.
func WithLevel(l slog.Level) Option {
	return func(c *config) {
		c.level = l
		c.levelSet = true
	}
}

// WithFormat sets output format. Panics on unknown formats.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
			c.formatSet = true
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithFile tees records into a rotating log file. An empty path is a no-op.
func WithFile(fc FileConfig) Option {
	return func(c *config) {
		if fc.Path != "" {
			c.file = &fc
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextExtractors registers functions that inject attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue adds an extractor logging ctx.Value(key) under name.
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

// WithEnvironment applies the defaults of env: text at debug level when the
// environment is verbose, JSON at info otherwise. Explicit WithLevel or
// WithFormat options win regardless of order.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(c *config) {
		env = environment.Parse(env.String())
		if !c.levelSet {
			c.level = slog.LevelInfo
			if env.Verbose() {
				c.level = slog.LevelDebug
			}
		}
		if !c.formatSet {
			c.format = FormatJSON
			if env.Verbose() {
				c.format = FormatText
			}
		}
		c.attrs = append(c.attrs, slog.String("env", env.String()))
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
	}
}

// ParseLevel converts debug, info, warn or error into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// SetAsDefault installs l as the slog default logger.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	levelSet   bool
	format     Format
	formatSet  bool
	output     io.Writer
	file       *FileConfig
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger with context injection.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := cfg.output
	if cfg.file != nil {
		out = io.MultiWriter(out, cfg.file.writer())
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// NewFromConfig builds a logger from environment driven settings.
func NewFromConfig(c Config, env environment.Environment, service string, opts ...Option) (*slog.Logger, error) {
	base := []Option{WithEnvironment(env, service)}

	if c.Level != "" {
		lvl, err := ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		base = append(base, WithLevel(lvl))
	}
	if c.Format != "" {
		f := Format(strings.ToLower(c.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("invalid log format %q", c.Format)
		}
		base = append(base, WithFormat(f))
	}
	base = append(base, WithFile(c.File))

	return New(append(base, opts...)...), nil
}
