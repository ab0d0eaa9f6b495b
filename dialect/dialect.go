package dialect

import (
	"strconv"
	"strings"

	"github.com/schemaforge/schemaforge"
	"github.com/schemaforge/schemaforge/schema"
)

// DefaultLength is applied to VARCHAR/CHAR columns that omit a length.
// It matches the JPA column default, so generated entities and
// migrations agree with what Hibernate would assume.
const DefaultLength = 255

// Params carries the optional type parameters of one column.
type Params struct {
	Length    int
	Precision int
	Scale     int
}

// Entry is a resolved type mapping: everything a template needs to
// render one column in Java and in SQL.
type Entry struct {
	// JavaType is the Java type name used in entities and DTOs.
	JavaType string
	// Import is the fully-qualified import the Java type requires,
	// empty for java.lang types.
	Import string
	// Validation is the bean-validation annotation derived from the
	// type parameters, empty when none applies.
	Validation string
	// SQLType is the column definition used in migrations.
	SQLType string
}

// Rule is one declarative mapping-table row. Validation and SQL may
// reference the placeholders $length, $precision, $scale and $integer
// (precision minus scale); Resolve substitutes them from the column
// parameters.
type Rule struct {
	JavaType   string `yaml:"javaType" json:"javaType"`
	Import     string `yaml:"import,omitempty" json:"import,omitempty"`
	Validation string `yaml:"validation,omitempty" json:"validation,omitempty"`
	SQL        string `yaml:"sql" json:"sql"`
}

// Table is one mapping table, keyed by abstract type.
type Table map[schema.Type]Rule

// A Dialect resolves abstract column types against an ordered list of
// mapping tables: caller-supplied overrides first, the dialect-specific
// table second, the universal table last. Earlier tables always win.
// A Dialect is immutable after construction and safe for concurrent use.
type Dialect struct {
	name   string
	tables []Table
}

// builtin holds the built-in dialect-specific tables.
var builtin = map[string]Table{
	"postgres": postgresTable,
	"mysql":    mysqlTable,
	"oracle":   oracleTable,
}

// Lookup returns the built-in dialect with the given name. An empty
// name selects postgres.
func Lookup(name string) (*Dialect, error) {
	if name == "" {
		name = "postgres"
	}
	t, ok := builtin[strings.ToLower(name)]
	if !ok {
		return nil, schemaforge.NewSchemaValidationError("", "", "unknown dialect "+strconv.Quote(name), nil)
	}
	return &Dialect{name: strings.ToLower(name), tables: []Table{t, universalTable}}, nil
}

// MustLookup is like Lookup but panics on unknown names. Intended for
// package-level defaults and tests.
func MustLookup(name string) *Dialect {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns the built-in dialect names, sorted.
func Names() []string {
	return []string{"mysql", "oracle", "postgres"}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return d.name
}

// WithOverrides returns a copy of the dialect with an extra mapping
// table layered in front of all existing tables. Used for override
// documents from the generator configuration.
func (d *Dialect) WithOverrides(t Table) *Dialect {
	if len(t) == 0 {
		return d
	}
	tables := make([]Table, 0, len(d.tables)+1)
	tables = append(tables, t)
	tables = append(tables, d.tables...)
	return &Dialect{name: d.name, tables: tables}
}

// Resolve maps an abstract type plus its parameters to a mapping entry.
// Resolution walks the table list in order and stops at the first table
// holding the type. It fails with UnknownTypeError when no table has an
// entry, and with InvalidParameterError when the matched rule requires
// parameters the column does not provide.
func (d *Dialect) Resolve(t schema.Type, p Params) (Entry, error) {
	for _, table := range d.tables {
		rule, ok := table[t]
		if !ok {
			continue
		}
		return d.expand(t, rule, p)
	}
	return Entry{}, schemaforge.NewUnknownTypeError(t.String(), d.name)
}

// ResolveField resolves a schema field through the mapping table.
func (d *Dialect) ResolveField(f *schema.Field) (Entry, error) {
	return d.Resolve(f.Type, Params{Length: f.Length, Precision: f.Precision, Scale: f.Scale})
}

// expand substitutes rule placeholders from the column parameters.
func (d *Dialect) expand(t schema.Type, rule Rule, p Params) (Entry, error) {
	needs := rule.SQL + rule.Validation
	length := p.Length
	switch {
	case length < 0:
		return Entry{}, schemaforge.NewInvalidParameterError(t.String(), "length", "must be positive")
	case length == 0 && strings.Contains(needs, "$length"):
		length = DefaultLength
	}
	if strings.Contains(needs, "$precision") {
		switch {
		case p.Precision <= 0:
			return Entry{}, schemaforge.NewInvalidParameterError(t.String(), "precision", "required but missing")
		case p.Scale < 0 || p.Scale > p.Precision:
			return Entry{}, schemaforge.NewInvalidParameterError(t.String(), "scale", "must be between 0 and precision")
		}
	}
	r := strings.NewReplacer(
		"$length", strconv.Itoa(length),
		"$precision", strconv.Itoa(p.Precision),
		"$integer", strconv.Itoa(p.Precision-p.Scale),
		"$scale", strconv.Itoa(p.Scale),
	)
	return Entry{
		JavaType:   rule.JavaType,
		Import:     rule.Import,
		Validation: r.Replace(rule.Validation),
		SQLType:    r.Replace(rule.SQL),
	}, nil
}
