package load

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/schema"
)

// Config is the static generator configuration document: target
// dialect, base Java package, default feature flags and per-dialect
// type mapping overrides. It is loaded once per run and read-only
// afterwards.
type Config struct {
	// Package is the base Java package of the generated code,
	// e.g. "com.example.shop".
	Package string `yaml:"package" json:"package"`
	// Dialect selects the target database engine. Empty means postgres.
	Dialect string `yaml:"dialect" json:"dialect"`
	// Features holds default feature flags applied to tables that do
	// not set their own.
	Features schema.FeatureSet `yaml:"features" json:"features"`
	// FailFast stops generation at the first failure instead of
	// collecting all failures.
	FailFast bool `yaml:"failFast" json:"failFast"`
	// Workers bounds render parallelism. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
	// TypeOverrides layers extra mapping rules over the built-in
	// tables, keyed by dialect name and abstract type name. The key
	// "*" applies to every dialect.
	TypeOverrides map[string]map[string]dialect.Rule `yaml:"typeOverrides" json:"typeOverrides"`
}

// DefaultConfig returns the configuration used when no config document
// is supplied.
func DefaultConfig() *Config {
	return &Config{Package: "com.example.app", Dialect: "postgres"}
}

// ConfigFile loads a generator configuration document from disk.
// YAML and JSON are both accepted.
func ConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaforge: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a generator configuration document.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("schemaforge: parse config: %w", err)
	}
	if strings.TrimSpace(c.Package) == "" {
		return nil, fmt.Errorf("schemaforge: config: package must not be empty")
	}
	return c, nil
}

// ResolveDialect builds the dialect for this configuration: the named
// built-in dialect with the configured override tables layered on top.
// Override layering order is wildcard first, then the dialect-specific
// overrides, so the specific ones win.
func (c *Config) ResolveDialect() (*dialect.Dialect, error) {
	d, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"*", d.Name()} {
		overrides, err := overrideTable(c.TypeOverrides[key])
		if err != nil {
			return nil, err
		}
		d = d.WithOverrides(overrides)
	}
	return d, nil
}

// overrideTable converts a config override document into a mapping
// table, resolving the abstract type names.
func overrideTable(rules map[string]dialect.Rule) (dialect.Table, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	t := make(dialect.Table, len(rules))
	for name, rule := range rules {
		typ, ok := schema.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("schemaforge: config: typeOverrides: unknown abstract type %q", name)
		}
		if rule.JavaType == "" || rule.SQL == "" {
			return nil, fmt.Errorf("schemaforge: config: typeOverrides[%s]: javaType and sql are required", name)
		}
		t[typ] = rule
	}
	return t, nil
}
