package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/agentstation/eramap/pkg/document"
	"github.com/agentstation/eramap/pkg/eras"
)

// SkipReason says why a row produced no record. Accepted means it did.
type SkipReason string

const (
	// Accepted marks a row that produced a record.
	Accepted SkipReason = ""
	// SkipShortRow is a row with fewer than two cells.
	SkipShortRow SkipReason = "short_row"
	// SkipEmptyEra is a row whose era cell is blank.
	SkipEmptyEra SkipReason = "empty_era"
	// SkipHeaderLabel is a table header row.
	SkipHeaderLabel SkipReason = "header_label"
	// SkipEraLength is an era cell too short or too long to be an era name.
	SkipEraLength SkipReason = "era_length"
	// SkipNoYear is a year cell with no readable AD start year.
	SkipNoYear SkipReason = "no_year"
	// SkipOutOfWindow is a year range outside the plausible window.
	SkipOutOfWindow SkipReason = "out_of_window"
)

// RowExtractor converts table rows into era records.
type RowExtractor struct {
	labels   map[string]struct{}
	minRunes int
	maxRunes int
	window   Window
	years    *YearParser
}

// NewRowExtractor builds a row extractor from cfg.
func NewRowExtractor(cfg Config) (*RowExtractor, error) {
	years, err := NewYearParser(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]struct{}, len(cfg.HeaderLabels))
	for _, l := range cfg.HeaderLabels {
		labels[l] = struct{}{}
	}
	return &RowExtractor{
		labels:   labels,
		minRunes: cfg.MinEraRunes,
		maxRunes: cfg.MaxEraRunes,
		window:   cfg.Window,
		years:    years,
	}, nil
}

// Extract reads cell 0 as the era name and cell 1 as its years. The reason is
// Accepted when a record was produced.
func (x *RowExtractor) Extract(regime string, row document.Row) (eras.Record, SkipReason) {
	if len(row) < 2 {
		return eras.Record{}, SkipShortRow
	}
	era := strings.TrimSpace(row[0])
	if era == "" {
		return eras.Record{}, SkipEmptyEra
	}
	if _, ok := x.labels[era]; ok {
		return eras.Record{}, SkipHeaderLabel
	}
	if n := utf8.RuneCountInString(era); n < x.minRunes || n > x.maxRunes {
		return eras.Record{}, SkipEraLength
	}

	years := x.years.Range(row[1])
	if !years.OK {
		return eras.Record{}, SkipNoYear
	}
	span := eras.Span{Start: years.Start, End: years.End}
	if !span.Within(x.window.Min, x.window.Max) {
		return eras.Record{}, SkipOutOfWindow
	}

	return eras.NewRecord(eras.Key{Regime: regime, Era: era}, span), Accepted
}
