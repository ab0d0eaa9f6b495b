package load

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge"
	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/schema"
)

// Raw document shapes. YAML is the primary format; JSON documents parse
// through the same structs since yaml.v3 accepts JSON.
type (
	document struct {
		Tables []tableDoc `yaml:"tables" json:"tables"`
	}

	tableDoc struct {
		Name     string            `yaml:"name" json:"name"`
		Features schema.FeatureSet `yaml:"features" json:"features"`
		Fields   []fieldDoc        `yaml:"fields" json:"fields"`
	}

	fieldDoc struct {
		Name          string  `yaml:"name" json:"name"`
		Type          string  `yaml:"type" json:"type"`
		Length        int     `yaml:"length" json:"length"`
		Precision     int     `yaml:"precision" json:"precision"`
		Scale         int     `yaml:"scale" json:"scale"`
		PrimaryKey    bool    `yaml:"primaryKey" json:"primaryKey"`
		Unique        bool    `yaml:"unique" json:"unique"`
		Nullable      bool    `yaml:"nullable" json:"nullable"`
		AutoIncrement bool    `yaml:"autoIncrement" json:"autoIncrement"`
		References    *refDoc `yaml:"references" json:"references"`
	}

	refDoc struct {
		Table  string `yaml:"table" json:"table"`
		Column string `yaml:"column" json:"column"`
	}
)

// Failure records one table that did not survive validation. The
// sibling tables of a failed table still load; the driver reports the
// failures alongside the successful artifacts.
type Failure struct {
	Table string
	Err   error
}

// Result is the outcome of loading one schema document.
type Result struct {
	// Tables holds the tables that passed validation, in document order.
	Tables []*schema.Table
	// Failures holds the tables that did not, with their reasons.
	Failures []Failure
}

// Err returns the combined error of all failed tables, or nil.
func (r *Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// LoadFile loads a schema document from disk.
func LoadFile(path string, d *dialect.Dialect) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaforge: read schema: %w", err)
	}
	return Load(data, d)
}

// Load parses and validates a schema document. Document-level problems
// (unparseable input, structural schema violations) fail the whole
// call; semantic problems are isolated per table and reported in the
// Result, so one bad table never blocks its siblings.
//
// Load is a pure transformation: it never touches external state and
// the returned tables are independent of the input buffer.
func Load(data []byte, d *dialect.Dialect) (*Result, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, schemaforge.NewSchemaValidationError("", "", "cannot parse document", err)
	}

	res := &Result{}
	byName := make(map[string]*schema.Table, len(doc.Tables))
	for _, td := range doc.Tables {
		if _, dup := byName[td.Name]; dup {
			res.fail(td.Name, schemaforge.NewSchemaValidationError(td.Name, "", "duplicate table name", nil))
			continue
		}
		t, err := loadTable(td, d)
		if err != nil {
			res.fail(td.Name, err)
			continue
		}
		byName[t.Name] = t
		res.Tables = append(res.Tables, t)
	}

	// Foreign keys resolve against the batch after all tables parsed;
	// forward references are legitimate.
	res.Tables = resolveReferences(res, byName)
	return res, nil
}

func (r *Result) fail(table string, err error) {
	r.Failures = append(r.Failures, Failure{Table: table, Err: err})
}

// loadTable validates one table document and builds the schema value.
func loadTable(td tableDoc, d *dialect.Dialect) (*schema.Table, error) {
	if strings.TrimSpace(td.Name) == "" {
		return nil, schemaforge.NewSchemaValidationError(td.Name, "", "table name is empty", nil)
	}
	t := &schema.Table{
		Name:     td.Name,
		Features: td.Features,
		Fields:   make([]*schema.Field, 0, len(td.Fields)),
	}
	seen := make(map[string]struct{}, len(td.Fields))
	pks := 0
	for _, fd := range td.Fields {
		f, err := loadField(td.Name, fd, d)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[f.Name]; dup {
			return nil, schemaforge.NewSchemaValidationError(td.Name, f.Name, "duplicate field name", nil)
		}
		seen[f.Name] = struct{}{}
		if f.PrimaryKey {
			pks++
		}
		t.Fields = append(t.Fields, f)
	}
	switch {
	case pks == 0:
		return nil, schemaforge.NewSchemaValidationError(td.Name, "", "table has no primary key", nil)
	case pks > 1:
		return nil, schemaforge.NewUnsupportedSchemaError(td.Name, "composite primary keys are not supported")
	}
	return t, nil
}

func loadField(table string, fd fieldDoc, d *dialect.Dialect) (*schema.Field, error) {
	if strings.TrimSpace(fd.Name) == "" {
		return nil, schemaforge.NewSchemaValidationError(table, "", "field name is empty", nil)
	}
	typ, ok := schema.ParseType(fd.Type)
	if !ok {
		return nil, schemaforge.NewUnknownTypeError(fd.Type, d.Name())
	}
	f := &schema.Field{
		Name:          fd.Name,
		Type:          typ,
		Length:        fd.Length,
		Precision:     fd.Precision,
		Scale:         fd.Scale,
		PrimaryKey:    fd.PrimaryKey,
		Unique:        fd.Unique,
		Nullable:      fd.Nullable,
		AutoIncrement: fd.AutoIncrement,
	}
	// Unresolvable types and bad parameters are caught at load time,
	// not deferred to rendering.
	if _, err := d.ResolveField(f); err != nil {
		return nil, err
	}
	switch {
	case f.PrimaryKey && f.Nullable:
		return nil, schemaforge.NewSchemaValidationError(table, f.Name, "primary key cannot be nullable", nil)
	case f.AutoIncrement && !typ.Integral():
		return nil, schemaforge.NewSchemaValidationError(table, f.Name,
			"autoIncrement requires an integer type, got "+typ.String(), nil)
	}
	if fd.References != nil {
		f.Ref = &schema.Reference{Table: fd.References.Table, Column: fd.References.Column}
	}
	return f, nil
}

// resolveReferences checks every foreign key against the tables of the
// batch. A reference to a table or column outside the batch is an
// explicit unresolved-reference failure for the referencing table, not
// a silent pass-through.
func resolveReferences(res *Result, byName map[string]*schema.Table) []*schema.Table {
	kept := res.Tables[:0]
	for _, t := range res.Tables {
		if err := checkReferences(t, byName); err != nil {
			res.fail(t.Name, err)
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func checkReferences(t *schema.Table, byName map[string]*schema.Table) error {
	for _, f := range t.Fields {
		if f.Ref == nil {
			continue
		}
		target, ok := byName[f.Ref.Table]
		if !ok {
			return schemaforge.NewSchemaValidationError(t.Name, f.Name,
				fmt.Sprintf("unresolved reference: table %q is not part of this batch", f.Ref.Table), nil)
		}
		if target.Field(f.Ref.Column) == nil {
			return schemaforge.NewSchemaValidationError(t.Name, f.Name,
				fmt.Sprintf("unresolved reference: column %q does not exist on table %q", f.Ref.Column, f.Ref.Table), nil)
		}
	}
	return nil
}
