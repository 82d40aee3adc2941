package eramap

import (
	"context"
	"strings"

	"github.com/agentstation/eramap/pkg/document"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/logging"
	"github.com/agentstation/eramap/pkg/reconciler"
	"github.com/agentstation/eramap/pkg/save"
)

// Extraction is the outcome of walking the document.
type Extraction struct {
	Source  string
	Records []eras.Record
	Stats   *extract.Stats
}

// Result is the outcome of a full run.
type Result struct {
	Extraction *Extraction

	// Reconciliation is nil when the run degraded to raw records
	Reconciliation *reconciler.Result

	// Degraded is set when no authoritative entries were available;
	// DegradedReason holds the load error, if there was one
	Degraded       bool
	DegradedReason error

	// Output holds the records that were (or, on a dry run, would be)
	// written
	Output []eras.Record
	DryRun bool
}

// Extract fetches the document and walks it into era records.
func (p *pipeline) Extract(ctx context.Context) (*Extraction, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	src := p.config.source
	ctx = logging.WithSource(ctx, src.Name())
	logger := logging.FromContext(ctx)

	// Step 1: fetch the markup
	markup, err := src.Fetch(logging.WithStage(ctx, "fetch"))
	if err != nil {
		return nil, err
	}

	// Step 2: reduce it to headings and tables
	nodes, err := document.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("nodes", len(nodes)).
		Msg("Parsed document")

	// Step 3: attribute table rows to regimes
	records, stats := p.walker.Walk(logging.WithStage(ctx, "walk"), nodes)

	logger.Info().
		Int("records", len(records)).
		Msg("Scraped era entries")

	return &Extraction{Source: src.Name(), Records: records, Stats: stats}, nil
}

// Run performs the full pipeline.
func (p *pipeline) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	// Step 1: extract
	extraction, err := p.Extract(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{Extraction: extraction, DryRun: p.config.dryRun}

	// Step 2: load authoritative entries; failure only degrades the run
	entries, err := p.config.reference.Entries(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("Authoritative list unavailable, writing raw scraped records")
		result.Degraded = true
		result.DegradedReason = err
	case len(entries) == 0:
		logger.Warn().Msg("Authoritative list is empty, writing raw scraped records")
		result.Degraded = true
	}

	// Step 3: reconcile
	if result.Degraded {
		result.Output = extraction.Records
	} else {
		rec, err := reconciler.New(reconciler.WithOverrides(p.config.tables))
		if err != nil {
			return nil, err
		}
		reconciled, err := rec.Reconcile(logging.WithStage(ctx, "reconcile"), entries, extraction.Records)
		if err != nil {
			return nil, err
		}
		p.hooks.trigger(reconciled)
		result.Reconciliation = reconciled
		result.Output = reconciled.Output()
		logger.Info().Msg(reconciled.Summary())
	}
	if result.Output == nil {
		result.Output = []eras.Record{}
	}

	// Step 4: write
	if p.config.dryRun {
		logger.Info().
			Bool("dry_run", true).
			Int("records", len(result.Output)).
			Msg("Dry run completed - output not written")
		return result, nil
	}
	if err := save.Records(result.Output, p.config.save...); err != nil {
		logging.FromContext(logging.WithStage(ctx, "save")).Error().Err(err).Msg("Failed to write output")
		return nil, err
	}
	logger.Info().
		Int("records", len(result.Output)).
		Bool("reconciled", !result.Degraded).
		Msg("Wrote output")

	return result, nil
}

// IsReferenceFailure reports whether a degraded result was caused by a
// reference load error rather than an empty list.
func (r *Result) IsReferenceFailure() bool {
	return r.Degraded && errors.IsReferenceUnavailable(r.DegradedReason)
}
