// Package log provides the zerolog setup shared by the CLI and its commands.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the base logger.
type Config struct {
	Level  string    // log level ("debug", "info", ...); defaults to warn
	Format string    // "console" or "json"; defaults to console
	Output io.Writer // defaults to os.Stderr
}

var base = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// New builds a logger from cfg without touching the base logger.
func New(cfg Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Format != "json" {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly, NoColor: true}
	}

	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", "c2rust-config").
		Logger()
}

// Configure replaces the base logger.
func Configure(cfg Config) zerolog.Logger {
	base = New(cfg)
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
