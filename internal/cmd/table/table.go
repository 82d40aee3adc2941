// Package table converts pipeline results to rows for tabular output.
package table

import (
	"sort"
	"strconv"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/reconciler"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RecordsToTableData converts era records to table format.
func RecordsToTableData(records []eras.Record) Data {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Regime, r.Era, strconv.Itoa(r.StartAD), strconv.Itoa(r.EndAD)})
	}
	return Data{
		Headers:         []string{"Regime", "Era", "Start AD", "End AD"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight},
	}
}

// RegimesToTableData converts walk statistics to one row per regime.
func RegimesToTableData(stats *extract.Stats) Data {
	data := Data{
		Headers:         []string{"Regime", "Eras"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	if stats == nil {
		return data
	}
	for _, regime := range stats.Regimes() {
		data.Rows = append(data.Rows, []string{regime, strconv.Itoa(stats.ByRegime[regime])})
	}
	return data
}

// SkippedToTableData converts skipped row counts to table format.
func SkippedToTableData(stats *extract.Stats) Data {
	data := Data{
		Headers:         []string{"Reason", "Rows"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	if stats == nil {
		return data
	}
	reasons := make([]extract.SkipReason, 0, len(stats.Skipped))
	for reason := range stats.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, reason := range reasons {
		data.Rows = append(data.Rows, []string{string(reason), strconv.Itoa(stats.Skipped[reason])})
	}
	return data
}

// ResultToTableData summarizes a run as key/value rows.
func ResultToTableData(result *eramap.Result) Data {
	data := Data{
		Headers:         []string{"Metric", "Value"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	add := func(metric string, n int) {
		data.Rows = append(data.Rows, []string{metric, strconv.Itoa(n)})
	}

	add("Scraped", len(result.Extraction.Records))
	if rec := result.Reconciliation; rec != nil {
		s := rec.Metadata.Stats
		add("Entries", s.Entries)
		add("Direct", s.Direct)
		add("Variant", s.Variant)
		add("Fallback", s.Fallback)
		add("Missing", s.Missing)
		add("Extra", s.Extra)
	} else {
		data.Rows = append(data.Rows, []string{"Reconciled", "no"})
	}
	add("Output", len(result.Output))
	return data
}

// MatchesToTableData lists every non-direct match: substitutions,
// fallbacks and missing entries.
func MatchesToTableData(rec *reconciler.Result) Data {
	data := Data{Headers: []string{"Regime", "Era", "Kind", "Alternate", "Years"}}
	if rec == nil {
		return data
	}
	for _, m := range rec.Matches {
		if m.Kind == reconciler.KindDirect {
			continue
		}
		years := "-"
		if m.Span != nil {
			years = m.Span.String()
		}
		alt := m.Alternate
		if alt == "" {
			alt = "-"
		}
		data.Rows = append(data.Rows, []string{m.Entry.Regime, m.Entry.Era, m.Kind.String(), alt, years})
	}
	return data
}
