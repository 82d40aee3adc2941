package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Verdict is the outcome of classifying a heading.
type Verdict int

const (
	// Unchanged leaves the current regime as it is.
	Unchanged Verdict = iota
	// Matched sets the current regime.
	Matched
	// Stop clears the current regime: the heading leaves the target period.
	Stop
	// Unrecognized clears the current regime: an unknown major section.
	Unrecognized
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case Stop:
		return "stop"
	case Unrecognized:
		return "unrecognized"
	default:
		return "unchanged"
	}
}

// Classification is a verdict plus the regime for Matched.
type Classification struct {
	Verdict Verdict
	Regime  string
}

var (
	citationPattern      = regexp.MustCompile(`\[.*?\]`)
	parentheticalPattern = regexp.MustCompile(`[（(][^)）]*[)）]`)
)

// CleanHeading strips citation markers, one parenthetical annotation and
// trailing punctuation: "西晉（266年—316年）[1]" becomes "西晉".
func CleanHeading(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(citationPattern.ReplaceAllString(text, ""))
	if loc := parentheticalPattern.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	}
	return strings.TrimRightFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("：:。.", r)
	})
}

type headingPattern struct {
	text   string
	regime string
}

// Classifier maps headings to regimes.
//
// Containment matching is deterministic: patterns of two or more characters
// are tried longest first, ties broken by lexical order.
type Classifier struct {
	exact      map[string]string
	patterns   []headingPattern
	stops      []string
	resetLevel int
}

// NewClassifier builds a classifier from cfg.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{
		exact:      make(map[string]string, len(cfg.HeadingRegimes)),
		stops:      append([]string(nil), cfg.StopMarkers...),
		resetLevel: cfg.ResetLevel,
	}
	for heading, regime := range cfg.HeadingRegimes {
		c.exact[heading] = regime
		if utf8.RuneCountInString(heading) >= 2 {
			c.patterns = append(c.patterns, headingPattern{text: heading, regime: regime})
		}
	}
	sort.Slice(c.patterns, func(i, j int) bool {
		li := utf8.RuneCountInString(c.patterns[i].text)
		lj := utf8.RuneCountInString(c.patterns[j].text)
		if li != lj {
			return li > lj
		}
		return c.patterns[i].text < c.patterns[j].text
	})
	return c
}

// Classify returns the verdict for a heading of the given level.
func (c *Classifier) Classify(level int, raw string) Classification {
	text := CleanHeading(raw)

	for _, stop := range c.stops {
		if strings.Contains(text, stop) {
			return Classification{Verdict: Stop}
		}
	}

	if regime, ok := c.exact[text]; ok {
		return Classification{Verdict: Matched, Regime: regime}
	}

	for _, p := range c.patterns {
		if strings.Contains(text, p.text) {
			return Classification{Verdict: Matched, Regime: p.regime}
		}
	}

	if level <= c.resetLevel {
		return Classification{Verdict: Unrecognized}
	}
	return Classification{Verdict: Unchanged}
}
