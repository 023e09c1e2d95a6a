// Package logger wraps zerolog with the worker's defaults.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Init replaces it.
var Logger = log.Logger

type Config struct {
	Level        string // debug, info, warn, error
	Format       string // json or pretty
	TimeFormat   string
	ReportCaller bool
}

// Init configures the global logger and zerolog's own global instance.
func Init(cfg Config) {
	Logger = New(os.Stdout, cfg)
	log.Logger = Logger
}

// New builds a logger writing to out. Unknown levels fall back to info.
func New(out io.Writer, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Error() *zerolog.Event { return Logger.Error() }

// Fatal logs and exits the process.
func Fatal() *zerolog.Event { return Logger.Fatal() }

// With returns a child of the global logger for adding fields.
func With() zerolog.Context { return Logger.With() }

// Ctx returns the logger attached to ctx, or a disabled logger when none is.
func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }

// WithContext attaches the global logger to ctx.
func WithContext(ctx context.Context) context.Context { return Logger.WithContext(ctx) }
