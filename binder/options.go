package binder

import (
	"fmt"
	"log/slog"

	"payload-binder/options"
	"payload-binder/primitive"
	"payload-binder/registry"
)

// Option configures a Binder.
type Option func(*Binder)

// WithNamespace sets the namespace root prefixed to type names derived from
// list field names. Without one, keyed list elements are kept raw.
func WithNamespace(root string) Option {
	return func(b *Binder) { b.namespace = root }
}

// WithStrict makes Bind return a *BindError when error diagnostics occur.
func WithStrict() Option {
	return func(b *Binder) { b.strict = true }
}

// WithLooseKeys matches source keys to fields after normalizing both, so
// "sample_int" binds the field keyed "sampleInt".
func WithLooseKeys() Option {
	return func(b *Binder) { b.looseKeys = true }
}

// WithCategories sets the scalar conversions allowed into typed fields.
func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(b *Binder) { b.categories = allowed }
}

// WithLogger logs every diagnostic to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithReporter calls report for every diagnostic as it is recorded.
func WithReporter(report func(Diagnostic)) Option {
	return func(b *Binder) { b.reporter = report }
}

// FromConfig builds a binder from a loaded configuration. Extra options are
// applied after the configured ones.
func FromConfig(reg *registry.Registry, cfg options.Config, opts ...Option) (*Binder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid binder config: %w", err)
	}

	categories, err := cfg.Categories()
	if err != nil {
		return nil, err
	}

	configured := []Option{
		WithNamespace(cfg.Namespace),
		WithCategories(categories),
	}

	if cfg.Strict {
		configured = append(configured, WithStrict())
	}

	if cfg.LooseKeys {
		configured = append(configured, WithLooseKeys())
	}

	return New(reg, append(configured, opts...)...), nil
}
