package gen

import (
	"runtime"

	"github.com/schemaforge/schemaforge"
	"github.com/schemaforge/schemaforge/compiler/load"
	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/templates"
)

// Generator renders the enabled templates for a batch of tables. It is
// configured once through options and safe for concurrent use
// afterwards.
type Generator struct {
	pkg       string
	dialect   *dialect.Dialect
	features  schema.FeatureSet
	templates []*templates.Descriptor
	workers   int
	failFast  bool
	header    string
}

// Option configures a Generator.
type Option func(*Generator) error

// NewGenerator builds a Generator. Defaults: package com.example.app,
// postgres dialect, the full template registry, GOMAXPROCS workers and
// no header line.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		pkg:       "com.example.app",
		dialect:   dialect.MustLookup("postgres"),
		templates: templates.All(),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// WithPackage sets the base Java package of the generated code.
func WithPackage(pkg string) Option {
	return func(g *Generator) error {
		if pkg == "" {
			return schemaforge.NewSchemaValidationError("", "", "package must not be empty", nil)
		}
		g.pkg = pkg
		return nil
	}
}

// WithDialect sets the type mapping dialect.
func WithDialect(d *dialect.Dialect) Option {
	return func(g *Generator) error {
		if d != nil {
			g.dialect = d
		}
		return nil
	}
}

// WithFeatures sets the default feature flags. Per-table flags are
// combined with these: a feature is active when either side enables it.
func WithFeatures(fs schema.FeatureSet) Option {
	return func(g *Generator) error {
		g.features = fs
		return nil
	}
}

// WithTemplates restricts generation to the named templates. Unknown
// identifiers are rejected.
func WithTemplates(ids ...string) Option {
	return func(g *Generator) error {
		ds := make([]*templates.Descriptor, 0, len(ids))
		for _, id := range ids {
			d, ok := templates.Lookup(id)
			if !ok {
				return schemaforge.NewSchemaValidationError("", "", "unknown template "+id, nil)
			}
			ds = append(ds, d)
		}
		g.templates = ds
		return nil
	}
}

// WithWorkers bounds render parallelism. Non-positive values keep the
// default.
func WithWorkers(n int) Option {
	return func(g *Generator) error {
		if n > 0 {
			g.workers = n
		}
		return nil
	}
}

// WithFailFast stops generation at the first failure instead of
// collecting all failures.
func WithFailFast(v bool) Option {
	return func(g *Generator) error {
		g.failFast = v
		return nil
	}
}

// WithHeader sets a comment line emitted at the top of every artifact.
func WithHeader(header string) Option {
	return func(g *Generator) error {
		g.header = header
		return nil
	}
}

// FromConfig applies a loaded generator configuration document:
// package, dialect with its type overrides, default features, worker
// count and fail-fast policy.
func FromConfig(c *load.Config) Option {
	return func(g *Generator) error {
		d, err := c.ResolveDialect()
		if err != nil {
			return err
		}
		for _, opt := range []Option{
			WithPackage(c.Package),
			WithDialect(d),
			WithFeatures(c.Features),
			WithWorkers(c.Workers),
			WithFailFast(c.FailFast),
		} {
			if err := opt(g); err != nil {
				return err
			}
		}
		return nil
	}
}
