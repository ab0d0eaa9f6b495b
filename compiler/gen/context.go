package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/schema"
)

// GenerationContext is the flattened variable environment for one
// table: the schema projected through the type mapping table plus the
// derived naming. One context is built per (table, run) and exclusively
// owned by the rendering task.
type GenerationContext struct {
	Table    *schema.Table
	Features schema.FeatureSet
	Vars     map[string]any
}

// newContext projects one table through the generator's dialect and
// derives the naming conventions the templates expect.
func (g *Generator) newContext(t *schema.Table, version int) (*GenerationContext, error) {
	features := mergeFeatures(g.features, t.Features)
	singular := inflect.Singularize(t.Name)

	vars := map[string]any{
		"packageName":      g.pkg,
		"packagePath":      strings.ReplaceAll(g.pkg, ".", "/"),
		"tableName":        t.Name,
		"className":        inflect.Camelize(singular),
		"entityVar":        inflect.CamelizeDownFirst(singular),
		"restPath":         inflect.Dasherize(inflect.Underscore(inflect.Pluralize(singular))),
		"migrationVersion": fmt.Sprintf("%d", version),
		"auditing":         features.Auditing,
		"softDelete":       features.SoftDelete,
		"caching":          features.Caching,
		"hasHeader":        g.header != "",
		"header":           g.header,
	}

	importSet := make(map[string]struct{})
	fields := make([]map[string]any, 0, len(t.Fields))
	for _, f := range t.Fields {
		entry, err := g.dialect.ResolveField(f)
		if err != nil {
			return nil, err
		}
		if entry.Import != "" {
			importSet[entry.Import] = struct{}{}
		}
		fields = append(fields, map[string]any{
			"name":          inflect.CamelizeDownFirst(f.Name),
			"methodName":    inflect.Camelize(f.Name),
			"column":        f.Name,
			"javaType":      entry.JavaType,
			"sqlType":       entry.SQLType,
			"validation":    entry.Validation,
			"hasValidation": entry.Validation != "",
			"primaryKey":    f.PrimaryKey,
			"unique":        f.Unique,
			"nullable":      f.Nullable,
			"notNullable":   !f.Nullable,
			"autoIncrement": f.AutoIncrement,
		})
		if f.PrimaryKey {
			vars["idType"] = entry.JavaType
			vars["idName"] = inflect.CamelizeDownFirst(f.Name)
			vars["idMethod"] = inflect.Camelize(f.Name)
			vars["idColumn"] = f.Name
		}
	}
	vars["fields"] = fields
	vars["imports"] = sortedImports(importSet)

	columns, err := g.sqlColumns(t, features)
	if err != nil {
		return nil, err
	}
	vars["columns"] = columns

	return &GenerationContext{Table: t, Features: features, Vars: vars}, nil
}

// runContext is the table-independent environment for run-scoped
// templates (feature configuration classes).
func (g *Generator) runContext() map[string]any {
	return map[string]any{
		"packageName": g.pkg,
		"packagePath": strings.ReplaceAll(g.pkg, ".", "/"),
		"hasHeader":   g.header != "",
		"header":      g.header,
	}
}

// sqlColumns builds the migration column definitions: one entry per
// field, then the feature columns, then the foreign key constraints.
func (g *Generator) sqlColumns(t *schema.Table, features schema.FeatureSet) ([]map[string]any, error) {
	var columns []map[string]any
	def := func(format string, args ...any) {
		columns = append(columns, map[string]any{"def": fmt.Sprintf(format, args...)})
	}

	for _, f := range t.Fields {
		entry, err := g.dialect.ResolveField(f)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		b.WriteString(f.Name)
		b.WriteString(" ")
		b.WriteString(entry.SQLType)
		if f.AutoIncrement {
			b.WriteString(" ")
			b.WriteString(g.autoIncrementClause())
		}
		if !f.Nullable && !f.PrimaryKey {
			b.WriteString(" NOT NULL")
		}
		if f.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		}
		if f.Unique {
			b.WriteString(" UNIQUE")
		}
		def("%s", b.String())
	}

	if features.SoftDelete {
		boolean, err := g.dialect.Resolve(schema.TypeBoolean, dialect.Params{})
		if err != nil {
			return nil, err
		}
		def("deleted %s NOT NULL DEFAULT FALSE", boolean.SQLType)
	}
	if features.Auditing {
		ts, err := g.dialect.Resolve(schema.TypeTimestamp, dialect.Params{})
		if err != nil {
			return nil, err
		}
		def("created_at %s NOT NULL", ts.SQLType)
		def("updated_at %s NOT NULL", ts.SQLType)
	}

	for _, f := range t.Fields {
		if f.Ref == nil {
			continue
		}
		def("CONSTRAINT fk_%s_%s FOREIGN KEY (%s) REFERENCES %s (%s)",
			t.Name, f.Name, f.Name, f.Ref.Table, f.Ref.Column)
	}
	return columns, nil
}

// autoIncrementClause returns the dialect's identity column keyword.
func (g *Generator) autoIncrementClause() string {
	if g.dialect.Name() == "mysql" {
		return "AUTO_INCREMENT"
	}
	return "GENERATED BY DEFAULT AS IDENTITY"
}

func sortedImports(set map[string]struct{}) []string {
	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}
