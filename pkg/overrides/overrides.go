// Package overrides holds the hand-maintained corrections applied during
// reconciliation: variant spellings of era names and fixed years for eras
// the source document does not list.
package overrides

import (
	_ "embed"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/eramap/internal/utils/ptr"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Variants maps an authoritative key to the era name the document uses
// instead. A present key with a nil alternate declares that no mapping
// exists, which is different from the key being absent.
type Variants map[eras.Key]*string

// Fallbacks maps an authoritative key to manually supplied years.
type Fallbacks map[eras.Key]eras.Span

// Tables bundles the variant and fallback tables.
type Tables struct {
	Variants  Variants
	Fallbacks Fallbacks
}

// Alternate returns the alternate era for key. It reports false when the key
// is absent or explicitly has no mapping.
func (t *Tables) Alternate(key eras.Key) (string, bool) {
	if t == nil {
		return "", false
	}
	alt, ok := t.Variants[key]
	if !ok || alt == nil {
		return "", false
	}
	return *alt, true
}

// Declared reports whether key appears in the variant table, with or
// without an alternate.
func (t *Tables) Declared(key eras.Key) bool {
	if t == nil {
		return false
	}
	_, ok := t.Variants[key]
	return ok
}

// Fallback returns the manual years for key.
func (t *Tables) Fallback(key eras.Key) (eras.Span, bool) {
	if t == nil {
		return eras.Span{}, false
	}
	span, ok := t.Fallbacks[key]
	return span, ok
}

// VariantTargets returns the set of era names used as non-nil alternates.
func (t *Tables) VariantTargets() map[string]struct{} {
	targets := make(map[string]struct{})
	if t == nil {
		return targets
	}
	for _, alt := range t.Variants {
		if alt != nil {
			targets[*alt] = struct{}{}
		}
	}
	return targets
}

type variantEntry struct {
	Regime    string  `yaml:"regime"`
	Era       string  `yaml:"era"`
	Alternate *string `yaml:"alternate"`
}

type fallbackEntry struct {
	Regime  string `yaml:"regime"`
	Era     string `yaml:"era"`
	StartAD int    `yaml:"start_ad"`
	EndAD   int    `yaml:"end_ad"`
}

type file struct {
	Variants  []variantEntry  `yaml:"variants"`
	Fallbacks []fallbackEntry `yaml:"fallbacks"`
}

var defaults = mustParse(defaultsYAML, "defaults.yaml")

func mustParse(data []byte, name string) *Tables {
	t, err := Parse(data, name)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns a copy of the built-in tables.
func Default() *Tables {
	t := &Tables{
		Variants:  make(Variants, len(defaults.Variants)),
		Fallbacks: make(Fallbacks, len(defaults.Fallbacks)),
	}
	for k, v := range defaults.Variants {
		if v != nil {
			v = ptr.String(*v)
		}
		t.Variants[k] = v
	}
	for k, v := range defaults.Fallbacks {
		t.Fallbacks[k] = v
	}
	return t
}

// Load reads tables from a YAML file. The file replaces the defaults
// entirely.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapResource("load", "overrides", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML overrides. name is used in error messages.
func Parse(data []byte, name string) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}

	t := &Tables{
		Variants:  make(Variants, len(f.Variants)),
		Fallbacks: make(Fallbacks, len(f.Fallbacks)),
	}
	for _, v := range f.Variants {
		key := eras.Key{Regime: v.Regime, Era: v.Era}
		if err := checkKey("variants", key); err != nil {
			return nil, err
		}
		if _, dup := t.Variants[key]; dup {
			return nil, errors.NewValidationError("variants", key.String(), "duplicate entry")
		}
		t.Variants[key] = v.Alternate
	}
	for _, fb := range f.Fallbacks {
		key := eras.Key{Regime: fb.Regime, Era: fb.Era}
		if err := checkKey("fallbacks", key); err != nil {
			return nil, err
		}
		if _, dup := t.Fallbacks[key]; dup {
			return nil, errors.NewValidationError("fallbacks", key.String(), "duplicate entry")
		}
		t.Fallbacks[key] = eras.Span{Start: fb.StartAD, End: fb.EndAD}
	}
	return t, nil
}

func checkKey(field string, key eras.Key) error {
	if key.Regime == "" || key.Era == "" {
		return errors.NewValidationError(field, key.String(), "regime and era are required")
	}
	return nil
}
