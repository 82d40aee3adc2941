// Package authority loads the authoritative era list: the (regime, era)
// pairs that reconciliation must account for. The list carries names only;
// years come from the scraped document.
package authority

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
)

// Source provides authoritative entries. Failures are *errors.ReferenceError.
type Source interface {
	Entries(ctx context.Context) ([]eras.Entry, error)
}

// Open returns a Source for path, chosen by extension: .yaml and .yml files
// are read as YAML lists, anything else as declarative source text.
func Open(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &YAML{Path: path}
	default:
		return &Declarative{Path: path}
	}
}

// Static is an in-memory entry list.
type Static []eras.Entry

// Entries returns a copy of the list.
func (s Static) Entries(ctx context.Context) ([]eras.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapReference("", err)
	}
	return append([]eras.Entry(nil), s...), nil
}

// Declarative reads entries from source text in which each era is declared
// as `name: "<era>", regime: [Path::]<token>` and each regime token is
// labelled by a `[Path::]<token> => "<label>"` arm. Tokens without a label
// are used as the regime name unchanged.
type Declarative struct {
	Path string
}

var (
	entryPattern = regexp.MustCompile(`name:\s*"([^"]+)"\s*,\s*regime:\s*(?:\w+::)?(\w+)`)
	labelPattern = regexp.MustCompile(`(?:\w+::)?(\w+)\s*=>\s*"([^"]+)"`)
)

// Entries reads and parses the file.
func (d *Declarative) Entries(ctx context.Context) ([]eras.Entry, error) {
	data, err := read(ctx, d.Path)
	if err != nil {
		return nil, err
	}
	return ParseDeclarative(string(data)), nil
}

// ParseDeclarative extracts entries in declaration order.
func ParseDeclarative(content string) []eras.Entry {
	labels := make(map[string]string)
	for _, m := range labelPattern.FindAllStringSubmatch(content, -1) {
		labels[m[1]] = m[2]
	}

	var entries []eras.Entry
	for _, m := range entryPattern.FindAllStringSubmatch(content, -1) {
		regime := m[2]
		if label, ok := labels[regime]; ok {
			regime = label
		}
		entries = append(entries, eras.Entry{Regime: regime, Era: m[1]})
	}
	return entries
}

// YAML reads entries from a YAML list of {regime, era} mappings.
type YAML struct {
	Path string
}

// Entries reads and parses the file.
func (y *YAML) Entries(ctx context.Context) ([]eras.Entry, error) {
	data, err := read(ctx, y.Path)
	if err != nil {
		return nil, err
	}
	entries, err := ParseYAML(data, y.Path)
	if err != nil {
		return nil, errors.WrapReference(y.Path, err)
	}
	return entries, nil
}

// ParseYAML decodes a YAML entry list. name is used in error messages.
func ParseYAML(data []byte, name string) ([]eras.Entry, error) {
	var entries []eras.Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	for i, e := range entries {
		if e.Regime == "" || e.Era == "" {
			return nil, errors.NewValidationError("entries", i, "regime and era are required")
		}
	}
	return entries, nil
}

func read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapReference(path, err)
	}
	if path == "" {
		return nil, errors.NewReferenceError("", errors.New("no reference path configured"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapReference(path, err)
	}
	return data, nil
}
