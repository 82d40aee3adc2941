// Package matcher matches regime and era names against glob or regex
// patterns.
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/agentstation/eramap/pkg/eras"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher matches names against one compiled pattern.
type Matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern. An empty pattern matches everything.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return m, nil
}

// Match reports whether name matches the pattern.
func (m *Matcher) Match(name string) bool {
	if m == nil || m.pattern == "" {
		return true
	}
	if m.patternType == Regex {
		return m.compiled.MatchString(name)
	}
	matched, _ := path.Match(m.pattern, name)
	return matched
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// Filter returns the records whose regime and era both match. A nil
// matcher matches everything.
func Filter(records []eras.Record, regime, era *Matcher) []eras.Record {
	var out []eras.Record
	for _, r := range records {
		if regime.Match(r.Regime) && era.Match(r.Era) {
			out = append(out, r)
		}
	}
	return out
}

// detectPatternType reports Regex when the pattern holds regex-only
// metacharacters and Glob otherwise.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\p", "\\w", "\\s",
		"(?:", "(?i)", "{", "}", "+", "|", "(", ")", ".*",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}
