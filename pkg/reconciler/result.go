package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/eramap/pkg/eras"
)

// Match is the outcome for one authoritative entry. Span is nil when the
// entry is missing; Alternate is set only for variant matches.
type Match struct {
	Entry     eras.Entry
	Kind      MatchKind
	Span      *eras.Span
	Alternate string
}

// Record returns the output record for a resolved match.
func (m Match) Record() (eras.Record, bool) {
	if m.Span == nil {
		return eras.Record{}, false
	}
	return eras.NewRecord(m.Entry.Key(), *m.Span), true
}

// Event is a notable resolution: a variant substitution or a manual
// fallback.
type Event struct {
	Kind      MatchKind
	Key       eras.Key
	Alternate string
	Span      eras.Span
}

// String returns a one-line description of the event.
func (e Event) String() string {
	if e.Kind == KindVariant {
		return fmt.Sprintf("%s → %s (%s)", e.Key, e.Alternate, e.Span)
	}
	return fmt.Sprintf("%s (%s)", e.Key, e.Span)
}

// Result represents the outcome of a reconciliation.
type Result struct {
	// Matches holds one match per authoritative entry, in entry order
	Matches []Match

	// Missing lists entries no strategy resolved, in entry order
	Missing []eras.Entry

	// Extra lists scraped keys absent from the authoritative list, in
	// first-seen order
	Extra []eras.Key

	// Events lists variant and fallback resolutions in entry order
	Events []Event

	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics counts matches per kind.
type ResultStatistics struct {
	Entries  int `json:"entries" yaml:"entries"`
	Scraped  int `json:"scraped" yaml:"scraped"`
	Direct   int `json:"direct" yaml:"direct"`
	Variant  int `json:"variant" yaml:"variant"`
	Fallback int `json:"fallback" yaml:"fallback"`
	Missing  int `json:"missing" yaml:"missing"`
	Extra    int `json:"extra" yaml:"extra"`
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Matches: []Match{},
		Missing: []eras.Entry{},
		Extra:   []eras.Key{},
		Events:  []Event{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

func (r *Result) add(m Match) {
	r.Matches = append(r.Matches, m)
	stats := &r.Metadata.Stats
	stats.Entries++
	switch m.Kind {
	case KindDirect:
		stats.Direct++
	case KindVariant:
		stats.Variant++
		r.Events = append(r.Events, Event{Kind: KindVariant, Key: m.Entry.Key(), Alternate: m.Alternate, Span: *m.Span})
	case KindFallback:
		stats.Fallback++
		r.Events = append(r.Events, Event{Kind: KindFallback, Key: m.Entry.Key(), Span: *m.Span})
	case KindMissing:
		stats.Missing++
		r.Missing = append(r.Missing, m.Entry)
	}
}

// Output returns the resolved records in entry order. Missing entries are
// excluded.
func (r *Result) Output() []eras.Record {
	out := make([]eras.Record, 0, len(r.Matches))
	for _, m := range r.Matches {
		if rec, ok := m.Record(); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Resolved returns the number of entries that obtained years.
func (r *Result) Resolved() int {
	s := r.Metadata.Stats
	return s.Direct + s.Variant + s.Fallback
}

// IsComplete returns true if every authoritative entry was resolved.
func (r *Result) IsComplete() bool {
	return len(r.Missing) == 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("Matched %d of %d entries (%d direct, %d variant, %d fallback); %d missing, %d extra",
		r.Resolved(), s.Entries, s.Direct, s.Variant, s.Fallback, s.Missing, s.Extra)
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
