// Package extract turns the heading/table node sequence of the era-name page
// into era records. A Classifier maps headings to regimes, a RowExtractor
// converts table rows using the year grammar, and a Walker threads the
// current regime through the document so each table is attributed to the
// most recent applicable heading.
package extract

import (
	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/errors"
)

// Window is the inclusive range of plausible AD years.
type Window struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether year lies inside the window.
func (w Window) Contains(year int) bool {
	return year >= w.Min && year <= w.Max
}

// Config holds the vocabulary and limits used during extraction.
type Config struct {
	// HeadingRegimes maps cleaned heading text to a canonical regime.
	HeadingRegimes map[string]string

	// StopMarkers end attribution when contained in a heading.
	StopMarkers []string

	// HeaderLabels are era-cell texts that mark a table header row.
	HeaderLabels []string

	// Window bounds both start and end years.
	Window Window

	// MinEraRunes and MaxEraRunes bound the era-name length in characters.
	MinEraRunes int
	MaxEraRunes int

	// ResetLevel is the deepest heading level that clears the current regime
	// when it cannot be classified. Deeper headings keep it.
	ResetLevel int

	// Grammar describes how years and ranges are written.
	Grammar YearGrammar
}

// DefaultConfig returns the vocabulary for Six Dynasties and Sixteen Kingdoms
// era tables on the Chinese Wikipedia era-name list.
func DefaultConfig() Config {
	return Config{
		HeadingRegimes: DefaultHeadingRegimes(),
		StopMarkers:    DefaultStopMarkers(),
		HeaderLabels:   []string{"年號", "年号", "紀年", "纪年"},
		Window:         Window{Min: constants.MinYearAD, Max: constants.MaxYearAD},
		MinEraRunes:    constants.MinEraRunes,
		MaxEraRunes:    constants.MaxEraRunes,
		ResetLevel:     constants.ResetHeadingLevel,
		Grammar:        DefaultYearGrammar(),
	}
}

// Validate checks that the configuration can drive a walk.
func (c Config) Validate() error {
	if c.Window.Min > c.Window.Max {
		return errors.NewValidationError("window", c.Window, "min must not exceed max")
	}
	if c.MinEraRunes < 1 || c.MinEraRunes > c.MaxEraRunes {
		return errors.NewValidationError("era_runes", [2]int{c.MinEraRunes, c.MaxEraRunes}, "need 1 <= min <= max")
	}
	if len(c.HeadingRegimes) == 0 {
		return errors.NewValidationError("heading_regimes", nil, "at least one heading is required")
	}
	return c.Grammar.Validate()
}

// DefaultHeadingRegimes maps heading spellings, traditional and simplified,
// to canonical traditional-script regime names.
func DefaultHeadingRegimes() map[string]string {
	return map[string]string{
		"西晉": "西晉", "西晋": "西晉",
		"東晉": "東晉", "东晋": "東晉",
		"南朝宋": "劉宋", "劉宋": "劉宋", "刘宋": "劉宋",
		"南朝齊": "南齊", "南朝齐": "南齊", "南齊": "南齊", "南齐": "南齊",
		"南朝梁": "梁", "梁": "梁",
		"南朝陳": "陳", "南朝陈": "陳", "陳": "陳", "陈": "陳",
		"北魏": "北魏",
		"漢趙": "漢趙", "汉赵": "漢趙", "前趙": "漢趙", "前赵": "漢趙",
		"後趙": "後趙", "后赵": "後趙",
		"成漢": "成漢", "成汉": "成漢",
		"前涼": "前涼", "前凉": "前涼",
		"前燕": "前燕",
		"前秦": "前秦",
		"後秦": "後秦", "后秦": "後秦",
		"後燕": "後燕", "后燕": "後燕",
		"西秦": "西秦",
		"後涼": "後涼", "后凉": "後涼",
		"南涼": "南涼", "南凉": "南涼",
		"南燕": "南燕",
		"西涼": "西涼", "西凉": "西涼",
		"北涼": "北涼", "北凉": "北涼",
		"夏": "夏", "胡夏": "夏", "赫連夏": "夏",
		"北燕": "北燕",
		// single characters only ever match exactly
		"宋": "劉宋",
		"齊": "南齊", "齐": "南齊",
	}
}

// DefaultStopMarkers lists headings that leave the target period or the
// article body.
func DefaultStopMarkers() []string {
	return []string{
		"東魏", "东魏", "西魏", "北齊", "北齐", "北周",
		"隋朝", "隋", "唐朝", "唐",
		"參見", "参见", "參考文獻", "参考文献", "注釋", "注释", "外部連結", "外部链接",
	}
}
