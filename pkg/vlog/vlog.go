// Package vlog is the process-wide logging façade for the client.
//
// It wraps github.com/rs/zerolog the same way the teacher repo's pkg/log
// wraps it, but the level is sourced from the WEAVIATE_LOG_LEVEL
// environment variable exactly once, at Init, rather than read per request.
package vlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance. Set by Init; safe to use before
// Init with zerolog's permissive zero value (writes are simply dropped).
var Logger zerolog.Logger

// Level is one of the four levels the spec's env var recognizes.
type Level string

const (
	DebugLevel Level = "DEBUG"
	InfoLevel  Level = "INFO"
	WarnLevel  Level = "WARN"
	ErrorLevel Level = "ERROR"
)

// EnvVar is the environment variable the spec assigns to request logging.
const EnvVar = "WEAVIATE_LOG_LEVEL"

// Config configures the global logger.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// LevelFromEnv reads WEAVIATE_LOG_LEVEL once. Unset or unrecognized values
// default to INFO, per spec.md §6. Callers must not call this on the hot
// path; Client.Connect calls it exactly once.
func LevelFromEnv() Level {
	switch Level(os.Getenv(EnvVar)) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return Level(os.Getenv(EnvVar))
	default:
		return InfoLevel
	}
}

// Init initializes the global logger. Called once, from the first
// Client.Connect in the process.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// IsDebug reports whether the global logger is at debug level, used by the
// transport layer to decide whether to pay for request/response logging.
func IsDebug() bool {
	return zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithCollection returns a child logger tagged with a collection name.
func WithCollection(name string) zerolog.Logger {
	return Logger.With().Str("collection", name).Logger()
}

// WithRequestID returns a child logger tagged with a request correlation id.
func WithRequestID(id string) zerolog.Logger {
	return Logger.With().Str("request_id", id).Logger()
}
