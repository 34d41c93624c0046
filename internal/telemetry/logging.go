// Package telemetry builds the zerolog logger and Prometheus collectors
// conduit's demo and hub/select wiring use for lifecycle logging and
// metrics — the ambient observability layer the channel core itself
// never touches.
package telemetry

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/conduit/internal/config"
)

// NewLogger builds a zerolog.Logger from a LoggingConfig: plain JSON
// when Format is "json", a console writer otherwise.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
