// Package application provides the application interface for eramap commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    PipelineFunc: func(opts ...eramap.Option) (eramap.Pipeline, error) {
//	        return eramap.New(append(opts, eramap.WithSource(stub))...)
//	    },
//	}
//	cmd := scrape.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/eramap"
)

// Application provides the application interface that commands need.
// All methods must be safe for concurrent access.
type Application interface {
	// Pipeline builds a pipeline from the loaded configuration. Options
	// passed here are applied after the configured ones and win.
	Pipeline(opts ...eramap.Option) (eramap.Pipeline, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
