// Package logging provides structured logging for eramap using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so
// batch runs in CI produce machine-readable diagnostics.
//
// Components take their logger from the context:
//
//	ctx = logging.WithStage(ctx, "walk")
//	logging.FromContext(ctx).Info().Int("eras", 5).Msg("Extracted eras")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when the context carries none.
var defaultLogger = NewLoggerFromConfig(EnvConfig())

// EnvConfig returns the default configuration adjusted by LOG_LEVEL,
// LOG_FORMAT and NO_COLOR.
func EnvConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // Also update zerolog's global logger
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
