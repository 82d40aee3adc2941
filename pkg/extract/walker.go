package extract

import (
	"context"
	"sort"

	"github.com/agentstation/eramap/pkg/document"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/logging"
)

// WalkContext is the regime that tables are currently attributed to. The
// zero value has no regime.
type WalkContext struct {
	regime string
	set    bool
}

// In returns a context attributed to regime.
func In(regime string) WalkContext {
	return WalkContext{regime: regime, set: true}
}

// Regime returns the current regime and whether one is set.
func (wc WalkContext) Regime() (string, bool) {
	return wc.regime, wc.set
}

// Stats summarizes a walk.
type Stats struct {
	Headings         int
	Stops            int
	TablesAttributed int
	TablesIgnored    int
	RowsAccepted     int
	Skipped          map[SkipReason]int
	ByRegime         map[string]int
}

func newStats() *Stats {
	return &Stats{
		Skipped:  make(map[SkipReason]int),
		ByRegime: make(map[string]int),
	}
}

// Regimes returns the regimes that produced records, sorted.
func (s *Stats) Regimes() []string {
	regimes := make([]string, 0, len(s.ByRegime))
	for r := range s.ByRegime {
		regimes = append(regimes, r)
	}
	sort.Strings(regimes)
	return regimes
}

// Walker attributes table rows to the regime named by the most recent
// applicable heading.
type Walker struct {
	classifier *Classifier
	rows       *RowExtractor
}

// NewWalker validates cfg and builds a walker.
func NewWalker(cfg Config) (*Walker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows, err := NewRowExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return &Walker{classifier: NewClassifier(cfg), rows: rows}, nil
}

// Step processes one node and returns the context for the next node along
// with any records the node produced. stats may be nil.
func (w *Walker) Step(wc WalkContext, node document.Node, stats *Stats) (WalkContext, []eras.Record) {
	if stats == nil {
		stats = newStats()
	}

	switch node.Kind {
	case document.KindHeading:
		stats.Headings++
		c := w.classifier.Classify(node.Level, node.Text)
		switch c.Verdict {
		case Matched:
			return In(c.Regime), nil
		case Stop:
			stats.Stops++
			return WalkContext{}, nil
		case Unrecognized:
			return WalkContext{}, nil
		default:
			return wc, nil
		}

	case document.KindTable:
		regime, ok := wc.Regime()
		if !ok {
			stats.TablesIgnored++
			return wc, nil
		}
		stats.TablesAttributed++
		var records []eras.Record
		for _, row := range node.Rows {
			record, reason := w.rows.Extract(regime, row)
			if reason != Accepted {
				stats.Skipped[reason]++
				continue
			}
			stats.RowsAccepted++
			stats.ByRegime[regime]++
			records = append(records, record)
		}
		return wc, records
	}

	return wc, nil
}

// Walk processes nodes in order and returns every record produced.
func (w *Walker) Walk(ctx context.Context, nodes []document.Node) ([]eras.Record, *Stats) {
	logger := logging.FromContext(ctx)
	stats := newStats()

	var (
		wc      WalkContext
		records []eras.Record
	)
	for _, node := range nodes {
		next, found := w.Step(wc, node, stats)
		if node.Kind == document.KindHeading {
			regime, ok := next.Regime()
			logger.Debug().
				Int("level", node.Level).
				Str("heading", node.Text).
				Str("regime", regime).
				Bool("attributing", ok).
				Msg("Classified heading")
		}
		wc = next
		records = append(records, found...)
	}

	for reason, n := range stats.Skipped {
		logger.Debug().
			Str("reason", string(reason)).
			Int("rows", n).
			Msg("Skipped rows")
	}
	for _, regime := range stats.Regimes() {
		logging.FromContext(logging.WithRegime(ctx, regime)).Info().
			Int("eras", stats.ByRegime[regime]).
			Msg("Extracted eras")
	}
	logger.Info().
		Int("records", len(records)).
		Int("tables", stats.TablesAttributed).
		Int("tables_ignored", stats.TablesIgnored).
		Msg("Walked document")

	return records, stats
}
