// Package eras defines the data model shared by extraction and reconciliation:
// era records scraped from the source document, authoritative entries that
// name an era without years, and the keys that join the two.
package eras

import "fmt"

// Key identifies an era within a regime.
type Key struct {
	Regime string `json:"regime" yaml:"regime"`
	Era    string `json:"era" yaml:"era"`
}

// String returns "regime/era".
func (k Key) String() string {
	return k.Regime + "/" + k.Era
}

// Span is an inclusive AD year range.
type Span struct {
	Start int `json:"start_ad" yaml:"start_ad"`
	End   int `json:"end_ad" yaml:"end_ad"`
}

// String returns "start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Within reports whether both ends of the span fall inside [lo, hi].
func (s Span) Within(lo, hi int) bool {
	return s.Start >= lo && s.Start <= hi && s.End >= lo && s.End <= hi
}

// Record is an era name with the AD years it covered, attributed to a regime.
// StartAD may exceed EndAD when the source text is malformed; the value is
// passed through unchanged.
type Record struct {
	Regime  string `json:"regime" yaml:"regime"`
	Era     string `json:"era" yaml:"era"`
	StartAD int    `json:"start_ad" yaml:"start_ad"`
	EndAD   int    `json:"end_ad" yaml:"end_ad"`
}

// Key returns the record's (regime, era) key.
func (r Record) Key() Key {
	return Key{Regime: r.Regime, Era: r.Era}
}

// Span returns the record's years.
func (r Record) Span() Span {
	return Span{Start: r.StartAD, End: r.EndAD}
}

// NewRecord builds a record for key with the given years.
func NewRecord(key Key, span Span) Record {
	return Record{Regime: key.Regime, Era: key.Era, StartAD: span.Start, EndAD: span.End}
}

// Entry is an authoritative (regime, era) pair with no years.
type Entry struct {
	Regime string `json:"regime" yaml:"regime"`
	Era    string `json:"era" yaml:"era"`
}

// Key returns the entry's (regime, era) key.
func (e Entry) Key() Key {
	return Key{Regime: e.Regime, Era: e.Era}
}

// CountByRegime tallies records per regime.
func CountByRegime(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Regime]++
	}
	return counts
}
