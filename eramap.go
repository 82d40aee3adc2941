// Package eramap extracts era-name to AD-year mappings from a document of
// headings and tables and reconciles them against an authoritative era list.
//
// A run fetches the document, walks its headings and tables into era
// records, loads the authoritative entries, resolves each entry to years and
// writes the resolved records. When the authoritative list cannot be loaded
// the scraped records are written unreconciled.
package eramap

import (
	"context"
	"fmt"

	"github.com/agentstation/eramap/internal/sources/wikipedia"
	"github.com/agentstation/eramap/pkg/authority"
	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/overrides"
	"github.com/agentstation/eramap/pkg/save"
)

// DocumentSource retrieves the markup to extract from.
type DocumentSource interface {
	// Name identifies the source in logs
	Name() string

	// Fetch returns the document markup
	Fetch(ctx context.Context) (string, error)
}

// Pipeline runs extraction and reconciliation.
type Pipeline interface {
	// Extract fetches and walks the document without reconciling
	Extract(ctx context.Context) (*Extraction, error)

	// Run performs the full pipeline and writes the output unless this is a
	// dry run
	Run(ctx context.Context) (*Result, error)

	// OnEvent registers a callback for variant and fallback resolutions
	OnEvent(EventHook)

	// OnMissing registers a callback for unresolved authoritative entries
	OnMissing(MissingHook)
}

// pipeline is the internal implementation of the Pipeline interface.
type pipeline struct {
	config *config
	walker *extract.Walker
	hooks  *hooks
}

// config holds pipeline settings.
type config struct {
	source    DocumentSource
	reference authority.Source
	tables    *overrides.Tables
	extract   extract.Config
	save      []save.Option
	dryRun    bool
}

func defaultConfig() *config {
	return &config{
		source:    wikipedia.NewClient(),
		reference: authority.Open(constants.DefaultReferencePath),
		tables:    overrides.Default(),
		extract:   extract.DefaultConfig(),
	}
}

// New creates a pipeline with the given options.
func New(opts ...Option) (Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	walker, err := extract.NewWalker(cfg.extract)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		config: cfg,
		walker: walker,
		hooks:  newHooks(),
	}, nil
}
