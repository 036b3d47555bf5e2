package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a JSON logger on stdout, or a console logger at debug
// level in development. service is attached to every line.
func NewLogger(appEnv, service string) zerolog.Logger {
	return NewLoggerTo(os.Stdout, appEnv, service)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, appEnv, service string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger
}
