package reconciler

import (
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/overrides"
)

type options struct {
	tables     *overrides.Tables
	strategies []Strategy
}

func defaultOptions() *options {
	return &options{
		tables: overrides.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if options.strategies == nil {
		options.strategies = DefaultStrategies(options.tables)
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithOverrides sets the variant and fallback tables. They also decide
// which scraped eras are excluded from the extra report.
func WithOverrides(tables *overrides.Tables) Option {
	return func(o *options) error {
		if tables == nil {
			return &errors.ValidationError{
				Field:   "overrides",
				Message: "cannot be nil",
			}
		}
		o.tables = tables
		return nil
	}
}

// WithStrategies replaces the resolution order.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *options) error {
		if len(strategies) == 0 {
			return &errors.ValidationError{
				Field:   "strategies",
				Message: "at least one strategy is required",
			}
		}
		for _, s := range strategies {
			if s == nil {
				return &errors.ValidationError{
					Field:   "strategies",
					Message: "cannot contain nil",
				}
			}
		}
		o.strategies = strategies
		return nil
	}
}
