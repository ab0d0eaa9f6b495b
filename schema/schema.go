package schema

import (
	"fmt"
	"strings"
)

// The schema model is a pure value representation of one declarative
// table schema. It is constructed once by the loader and read-only
// afterwards; rendering tasks running in parallel share it without
// locking.
type (
	// Table describes one database table to scaffold code for.
	Table struct {
		// Name is the table name as written in the schema document,
		// conventionally snake_case and plural (e.g. "order_items").
		Name string
		// Fields holds the table columns in declaration order.
		Fields []*Field
		// Features holds the per-table feature toggles.
		Features FeatureSet
	}

	// Field describes one table column.
	Field struct {
		// Name is the column name, snake_case.
		Name string
		// Type is the abstract column type.
		Type Type
		// Length of VARCHAR/CHAR columns. Zero means unspecified.
		Length int
		// Precision and Scale of DECIMAL columns. Zero means unspecified.
		Precision int
		Scale     int
		// PrimaryKey marks the single primary key column.
		PrimaryKey bool
		// Unique marks a column backed by a unique constraint.
		Unique bool
		// Nullable marks a column that accepts NULL.
		Nullable bool
		// AutoIncrement marks a database-generated identity column.
		AutoIncrement bool
		// Ref holds the foreign-key reference, if any.
		Ref *Reference
	}

	// Reference is a foreign-key reference to a column of another
	// table in the same generation batch.
	Reference struct {
		Table  string
		Column string
	}

	// FeatureSet holds the boolean feature toggles of one table. Each
	// flag gates which templates are selected and which conditional
	// template sections render.
	FeatureSet struct {
		// Auditing adds created/updated audit columns and Spring Data
		// auditing annotations to the generated entity.
		Auditing bool `yaml:"auditing" json:"auditing"`
		// SoftDelete adds a deleted flag and soft-delete repository
		// methods instead of hard deletes.
		SoftDelete bool `yaml:"softDelete" json:"softDelete"`
		// Caching adds Spring cache annotations to the generated
		// service layer.
		Caching bool `yaml:"caching" json:"caching"`
	}
)

// PrimaryKey returns the primary key field, or nil when the table has
// none. The loader guarantees at most one.
func (t *Table) PrimaryKey() *Field {
	for _, f := range t.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// Field returns the field with the given name, or nil.
func (t *Table) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// HasReferences reports if any field carries a foreign-key reference.
func (t *Table) HasReferences() bool {
	for _, f := range t.Fields {
		if f.Ref != nil {
			return true
		}
	}
	return false
}

// Enabled reports if the feature with the given name is enabled.
// Recognized names are "auditing", "softdelete" and "caching"; unknown
// names report false.
func (fs FeatureSet) Enabled(name string) bool {
	switch name {
	case "auditing":
		return fs.Auditing
	case "softdelete":
		return fs.SoftDelete
	case "caching":
		return fs.Caching
	}
	return false
}

// ParseFeatures parses a comma-separated feature flag list, as passed
// on the command line or in tool parameters. Names are matched
// case-insensitively; unknown names are rejected.
func ParseFeatures(list string) (FeatureSet, error) {
	var fs FeatureSet
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "auditing":
			fs.Auditing = true
		case "softdelete":
			fs.SoftDelete = true
		case "caching":
			fs.Caching = true
		default:
			return fs, fmt.Errorf("schema: unknown feature %q", strings.TrimSpace(name))
		}
	}
	return fs, nil
}
