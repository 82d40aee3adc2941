// Package app provides the application context and dependency management
// for the eramap CLI: configuration, logging and pipeline construction.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/internal/cmd/application"
	"github.com/agentstation/eramap/internal/sources/wikipedia"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/overrides"
	"github.com/agentstation/eramap/pkg/save"
)

// App represents the eramap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Pipeline builds a pipeline from the configuration followed by opts.
func (a *App) Pipeline(opts ...eramap.Option) (eramap.Pipeline, error) {
	base, err := a.pipelineOptions()
	if err != nil {
		return nil, err
	}
	p, err := eramap.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "pipeline", "", err)
	}
	return p, nil
}

// pipelineOptions translates the configuration into pipeline options.
func (a *App) pipelineOptions() ([]eramap.Option, error) {
	c := a.config
	var opts []eramap.Option

	if c.InputPath != "" {
		opts = append(opts, eramap.WithSource(wikipedia.NewFile(c.InputPath)))
	} else {
		opts = append(opts, eramap.WithSource(wikipedia.NewClient(
			wikipedia.WithAPIURL(c.APIURL),
			wikipedia.WithPage(c.Page),
			wikipedia.WithVariant(c.Variant),
			wikipedia.WithTimeout(c.Timeout),
		)))
	}

	if c.ReferencePath != "" {
		opts = append(opts, eramap.WithReferencePath(c.ReferencePath))
	}

	if c.OverridesPath != "" {
		tables, err := overrides.Load(c.OverridesPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, eramap.WithOverrides(tables))
	}

	if c.OutputPath != "" {
		opts = append(opts,
			eramap.WithOutputPath(c.OutputPath),
			eramap.WithOutputFormat(save.FormatForPath(c.OutputPath)),
		)
	}

	opts = append(opts, eramap.WithWindow(c.WindowMin, c.WindowMax))

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
