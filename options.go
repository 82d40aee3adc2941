package eramap

import (
	"io"

	"github.com/agentstation/eramap/pkg/authority"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/overrides"
	"github.com/agentstation/eramap/pkg/save"
)

// Option is a function that configures a Pipeline.
type Option func(*config) error

// WithSource sets the document source.
func WithSource(src DocumentSource) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("source", nil, "cannot be nil")
		}
		c.source = src
		return nil
	}
}

// WithReference sets the authoritative entry source.
func WithReference(src authority.Source) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("reference", nil, "cannot be nil")
		}
		c.reference = src
		return nil
	}
}

// WithReferencePath loads authoritative entries from path.
func WithReferencePath(path string) Option {
	return func(c *config) error {
		c.reference = authority.Open(path)
		return nil
	}
}

// WithOverrides sets the variant and fallback tables.
func WithOverrides(tables *overrides.Tables) Option {
	return func(c *config) error {
		if tables == nil {
			return errors.NewValidationError("overrides", nil, "cannot be nil")
		}
		c.tables = tables
		return nil
	}
}

// WithExtractConfig sets the walker vocabulary and limits.
func WithExtractConfig(cfg extract.Config) Option {
	return func(c *config) error {
		c.extract = cfg
		return nil
	}
}

// WithWindow sets the plausible AD year window.
func WithWindow(minYear, maxYear int) Option {
	return func(c *config) error {
		c.extract.Window = extract.Window{Min: minYear, Max: maxYear}
		return nil
	}
}

// WithOutputPath sets where the output artifact is written.
func WithOutputPath(path string) Option {
	return func(c *config) error {
		c.save = append(c.save, save.WithPath(path))
		return nil
	}
}

// WithOutputWriter writes the output to w instead of a file.
func WithOutputWriter(w io.Writer) Option {
	return func(c *config) error {
		c.save = append(c.save, save.WithWriter(w))
		return nil
	}
}

// WithOutputFormat sets the output encoding.
func WithOutputFormat(f save.Format) Option {
	return func(c *config) error {
		if !f.IsValid() {
			return errors.NewValidationError("format", f.String(), "unsupported output format")
		}
		c.save = append(c.save, save.WithFormat(f))
		return nil
	}
}

// WithDryRun runs everything except writing the output.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}
