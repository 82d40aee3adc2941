package reconciler

import (
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/overrides"
)

// MatchKind records how an authoritative entry obtained its years.
type MatchKind string

const (
	// KindDirect means the entry's own key was scraped.
	KindDirect MatchKind = "direct"
	// KindVariant means the years came from a known alternate spelling.
	KindVariant MatchKind = "variant"
	// KindFallback means the years were supplied manually.
	KindFallback MatchKind = "fallback"
	// KindMissing means no strategy produced years.
	KindMissing MatchKind = "missing"
)

// String returns the string representation of a match kind.
func (k MatchKind) String() string {
	return string(k)
}

// Strategy resolves an authoritative entry against the scraped index.
// Strategies are tried in order and the first that resolves wins.
type Strategy interface {
	// Kind returns the match kind this strategy produces
	Kind() MatchKind

	// Resolve returns a match for entry, or false when the strategy does
	// not apply
	Resolve(entry eras.Entry, idx *Index) (Match, bool)
}

// DefaultStrategies returns direct, variant and fallback resolution, in that
// order.
func DefaultStrategies(tables *overrides.Tables) []Strategy {
	return []Strategy{
		DirectStrategy{},
		VariantStrategy{Tables: tables},
		FallbackStrategy{Tables: tables},
	}
}

// DirectStrategy matches an entry whose key was scraped.
type DirectStrategy struct{}

// Kind returns KindDirect.
func (DirectStrategy) Kind() MatchKind { return KindDirect }

// Resolve looks the entry's key up in the index.
func (DirectStrategy) Resolve(entry eras.Entry, idx *Index) (Match, bool) {
	r, ok := idx.Lookup(entry.Key())
	if !ok {
		return Match{}, false
	}
	span := r.Span()
	return Match{Entry: entry, Kind: KindDirect, Span: &span}, true
}

// VariantStrategy matches an entry through a declared alternate era name.
// Entries declared with no alternate never match.
type VariantStrategy struct {
	Tables *overrides.Tables
}

// Kind returns KindVariant.
func (VariantStrategy) Kind() MatchKind { return KindVariant }

// Resolve looks up (regime, alternate) in the index.
func (s VariantStrategy) Resolve(entry eras.Entry, idx *Index) (Match, bool) {
	alt, ok := s.Tables.Alternate(entry.Key())
	if !ok {
		return Match{}, false
	}
	r, ok := idx.Lookup(eras.Key{Regime: entry.Regime, Era: alt})
	if !ok {
		return Match{}, false
	}
	span := r.Span()
	return Match{Entry: entry, Kind: KindVariant, Span: &span, Alternate: alt}, true
}

// FallbackStrategy supplies manually maintained years.
type FallbackStrategy struct {
	Tables *overrides.Tables
}

// Kind returns KindFallback.
func (FallbackStrategy) Kind() MatchKind { return KindFallback }

// Resolve returns the fallback years for the entry, if any.
func (s FallbackStrategy) Resolve(entry eras.Entry, _ *Index) (Match, bool) {
	span, ok := s.Tables.Fallback(entry.Key())
	if !ok {
		return Match{}, false
	}
	return Match{Entry: entry, Kind: KindFallback, Span: &span}, true
}
