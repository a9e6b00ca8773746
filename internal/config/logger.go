package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger for one binary of the cart offer service.
// Entries carry the binary name under "app" and the host under "host", so the
// API, the segment mock and the healthcheck can write to one shared sink.
// Layers derive child loggers from it keyed by "service", "handler",
// "repository" or "component".
func NewLogger(cfg LoggerConfig, app string) zerolog.Logger {
	return newLogger(os.Stdout, cfg, app)
}

func newLogger(w io.Writer, cfg LoggerConfig, app string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).With().Timestamp().Str("app", app)
	if host, err := os.Hostname(); err == nil {
		ctx = ctx.Str("host", host)
	}
	return ctx.Logger()
}

// parseLevel maps a configured level name to zerolog, defaulting to info.
func parseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
