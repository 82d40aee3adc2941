// Package reconciler aligns scraped era records with the authoritative era
// list. Each authoritative entry is resolved by the first strategy that
// applies; unresolved entries are reported as missing and scraped records
// the list does not know are reported as extra.
package reconciler

import (
	"context"

	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/logging"
	"github.com/agentstation/eramap/pkg/overrides"
)

// Reconciler is the main interface for reconciling scraped records with
// authoritative entries.
type Reconciler interface {
	// Reconcile resolves every entry against records. The result's output
	// preserves entry order.
	Reconcile(ctx context.Context, entries []eras.Entry, records []eras.Record) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	strategies []Strategy
	tables     *overrides.Tables
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		strategies: options.strategies,
		tables:     options.tables,
	}, nil
}

// Reconcile performs reconciliation.
func (r *reconciler) Reconcile(ctx context.Context, entries []eras.Entry, records []eras.Record) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapResource("reconcile", "entries", "", err)
	}
	logger := logging.FromContext(ctx)

	result := NewResult()
	idx := NewIndex(records)
	result.Metadata.Stats.Scraped = idx.Len()

	logger.Info().
		Int("entries", len(entries)).
		Int("scraped", idx.Len()).
		Msg("Matching against authoritative entries")

	for _, entry := range entries {
		m := r.resolve(entry, idx)
		result.add(m)

		switch m.Kind {
		case KindVariant:
			logger.Info().
				Str("regime", entry.Regime).
				Str("era", entry.Era).
				Str("alternate", m.Alternate).
				Stringer("years", m.Span).
				Msg("Variant match")
		case KindFallback:
			logger.Info().
				Str("regime", entry.Regime).
				Str("era", entry.Era).
				Stringer("years", m.Span).
				Msg("Manual fallback")
		}
	}

	result.Extra = r.extra(entries, idx)
	result.Metadata.Stats.Extra = len(result.Extra)

	if len(result.Missing) > 0 {
		logger.Warn().
			Int("count", len(result.Missing)).
			Msg("Authoritative entries could not be matched")
		for _, e := range result.Missing {
			logger.Warn().
				Str("regime", e.Regime).
				Str("era", e.Era).
				Msg("Missing entry")
		}
	}
	if len(result.Extra) > 0 {
		logger.Info().
			Int("count", len(result.Extra)).
			Msg("Scraped entries not in the authoritative list")
	}

	result.Finalize()
	return result, nil
}

func (r *reconciler) resolve(entry eras.Entry, idx *Index) Match {
	for _, s := range r.strategies {
		if m, ok := s.Resolve(entry, idx); ok {
			return m
		}
	}
	return Match{Entry: entry, Kind: KindMissing}
}

// extra returns distinct scraped keys that are not authoritative and whose
// era is not the target of a declared variant.
func (r *reconciler) extra(entries []eras.Entry, idx *Index) []eras.Key {
	known := make(map[eras.Key]struct{}, len(entries))
	for _, e := range entries {
		known[e.Key()] = struct{}{}
	}
	targets := r.tables.VariantTargets()

	extra := []eras.Key{}
	for _, key := range idx.Keys() {
		if _, ok := known[key]; ok {
			continue
		}
		if _, ok := targets[key.Era]; ok {
			continue
		}
		extra = append(extra, key)
	}
	return extra
}
