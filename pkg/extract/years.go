package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/agentstation/eramap/pkg/errors"
)

// YearGrammar describes how a year and a year range are written.
//
// A year is an optional BC marker immediately followed by a digit run
// (ASCII or full-width) and the unit marker, e.g. "265年" or "前140年".
// BC years yield nothing. A range is two such texts joined by one of the
// separators; separators are tried in order and the text is split once at
// the first occurrence of the first one present.
type YearGrammar struct {
	Separators []string
	BCMarker   string
	Unit       string
}

// DefaultYearGrammar returns the grammar used by Chinese era tables.
func DefaultYearGrammar() YearGrammar {
	return YearGrammar{
		Separators: []string{"－", "—", "–", "-", "～", "~", "至"},
		BCMarker:   "前",
		Unit:       "年",
	}
}

// Validate checks that the grammar is usable.
func (g YearGrammar) Validate() error {
	if g.Unit == "" {
		return errors.NewValidationError("grammar.unit", g.Unit, "unit marker is required")
	}
	for _, sep := range g.Separators {
		if sep == "" {
			return errors.NewValidationError("grammar.separators", g.Separators, "separators must be non-empty")
		}
	}
	return nil
}

// YearRange is the result of parsing year text. OK is false when no start
// year could be read.
type YearRange struct {
	Start int
	End   int
	OK    bool
}

// YearParser applies a YearGrammar.
type YearParser struct {
	grammar YearGrammar
	token   *regexp.Regexp
}

// NewYearParser compiles g.
func NewYearParser(g YearGrammar) (*YearParser, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	bc := ""
	if g.BCMarker != "" {
		bc = "(" + regexp.QuoteMeta(g.BCMarker) + ")?"
	}
	token, err := regexp.Compile(bc + `([0-9０-９]+)` + regexp.QuoteMeta(g.Unit))
	if err != nil {
		return nil, errors.WrapValidation("grammar", err)
	}
	return &YearParser{grammar: g, token: token}, nil
}

var defaultYears = mustYearParser(DefaultYearGrammar())

func mustYearParser(g YearGrammar) *YearParser {
	p, err := NewYearParser(g)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseYearRange parses text with the default grammar.
func ParseYearRange(text string) YearRange {
	return defaultYears.Range(text)
}

// ParseYear reads the first year in text with the default grammar.
func ParseYear(text string) (int, bool) {
	return defaultYears.Year(text)
}

// Year reads the first year token in text. A token carrying the BC marker,
// or one whose digits overflow, yields nothing.
func (p *YearParser) Year(text string) (int, bool) {
	m := p.token.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	digits := m[len(m)-1]
	if len(m) == 3 && m[1] != "" {
		return 0, false
	}
	year, err := strconv.Atoi(width.Narrow.String(digits))
	if err != nil {
		return 0, false
	}
	return year, true
}

// Range parses a year or a year range. Halves are returned verbatim, so a
// malformed source can produce Start > End.
func (p *YearParser) Range(text string) YearRange {
	text = strings.TrimSpace(text)
	for _, sep := range p.grammar.Separators {
		left, right, found := strings.Cut(text, sep)
		if !found {
			continue
		}
		start, ok := p.Year(left)
		if !ok {
			return YearRange{}
		}
		if end, ok := p.Year(right); ok {
			return YearRange{Start: start, End: end, OK: true}
		}
		return YearRange{Start: start, End: start, OK: true}
	}
	if year, ok := p.Year(text); ok {
		return YearRange{Start: year, End: year, OK: true}
	}
	return YearRange{}
}
