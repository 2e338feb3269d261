package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. development switches to a console
// writer at debug level; every other environment logs JSON at info.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout)
}

// NewLoggerTo is NewLogger writing to out. CLIs use it to keep stdout clean.
func NewLoggerTo(appEnv string, out io.Writer) zerolog.Logger {
	return newLogger(appEnv, out)
}

func newLogger(appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	return logger
}

// NopLogger returns a logger that drops everything. Components use it when no
// logger is injected.
func NopLogger() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// Logger aliases zerolog.Logger so packages depend on the logging contract
// through infra rather than on the third-party module.
type Logger = zerolog.Logger
