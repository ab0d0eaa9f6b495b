package templates

import (
	"embed"
	"fmt"
	"sort"

	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/template"
)

//go:embed assets/*.tmpl
var assets embed.FS

// Category groups templates by the kind of artifact they produce.
type Category string

const (
	CategoryEntity     Category = "entity"
	CategoryRepository Category = "repository"
	CategoryService    Category = "service"
	CategoryController Category = "controller"
	CategoryDTO        Category = "dto"
	CategoryMigration  Category = "migration"
	CategoryConfig     Category = "config"
)

// Scope determines how often a template renders in one run.
type Scope uint8

const (
	// ScopeTable templates render once per table.
	ScopeTable Scope = iota
	// ScopeRun templates render once per run, with a table-independent
	// context. Feature-gated configuration classes live here.
	ScopeRun
)

// Descriptor binds one template asset to its output path pattern, its
// declared context variables and an optional feature gate.
type Descriptor struct {
	// ID is the stable template identifier, e.g. "entity".
	ID string
	// Category is the artifact kind.
	Category Category
	// Scope is per-table or per-run.
	Scope Scope
	// Feature gates the template: empty means always enabled, otherwise
	// one of "auditing", "softdelete", "caching".
	Feature string
	// Body is the compiled template.
	Body *template.Template
	// Path is the compiled output path pattern.
	Path *template.Template
	// Vars lists every context variable the body and path may
	// reference. The registry test enforces that the declaration is
	// complete.
	Vars []string
}

// Enabled reports whether the descriptor applies under the given
// feature set.
func (d *Descriptor) Enabled(fs schema.FeatureSet) bool {
	return d.Feature == "" || fs.Enabled(d.Feature)
}

// registry holds the built-in descriptors, keyed by ID and ordered for
// deterministic iteration.
var (
	registry = make(map[string]*Descriptor)
	ordered  []*Descriptor
)

func register(d *Descriptor) {
	if _, dup := registry[d.ID]; dup {
		panic(fmt.Sprintf("templates: duplicate descriptor %q", d.ID))
	}
	registry[d.ID] = d
	ordered = append(ordered, d)
}

// asset parses one embedded template file, panicking on a broken asset
// so registry corruption surfaces at startup.
func asset(id, file string) *template.Template {
	data, err := assets.ReadFile("assets/" + file)
	if err != nil {
		panic(fmt.Sprintf("templates: missing asset %s: %v", file, err))
	}
	return template.MustParse(id, string(data))
}

func path(id, pattern string) *template.Template {
	return template.MustParse(id+".path", pattern)
}

func init() {
	register(&Descriptor{
		ID:       "entity",
		Category: CategoryEntity,
		Body:     asset("entity", "entity.java.tmpl"),
		Path:     path("entity", "src/main/java/{{packagePath}}/entity/{{className}}.java"),
		Vars: []string{
			"auditing", "className", "fields", "hasHeader", "header",
			"imports", "packageName", "packagePath", "softDelete", "tableName",
		},
	})
	register(&Descriptor{
		ID:       "repository",
		Category: CategoryRepository,
		Body:     asset("repository", "repository.java.tmpl"),
		Path:     path("repository", "src/main/java/{{packagePath}}/repository/{{className}}Repository.java"),
		Vars: []string{
			"className", "hasHeader", "header", "idMethod", "idName",
			"idType", "packageName", "packagePath", "softDelete",
		},
	})
	register(&Descriptor{
		ID:       "service",
		Category: CategoryService,
		Body:     asset("service", "service.java.tmpl"),
		Path:     path("service", "src/main/java/{{packagePath}}/service/{{className}}Service.java"),
		Vars: []string{
			"caching", "className", "entityVar", "hasHeader", "header",
			"idMethod", "idType", "packageName", "packagePath", "softDelete", "tableName",
		},
	})
	register(&Descriptor{
		ID:       "controller",
		Category: CategoryController,
		Body:     asset("controller", "controller.java.tmpl"),
		Path:     path("controller", "src/main/java/{{packagePath}}/controller/{{className}}Controller.java"),
		Vars: []string{
			"className", "entityVar", "hasHeader", "header", "idMethod",
			"idType", "packageName", "packagePath", "restPath",
		},
	})
	register(&Descriptor{
		ID:       "dto",
		Category: CategoryDTO,
		Body:     asset("dto", "dto.java.tmpl"),
		Path:     path("dto", "src/main/java/{{packagePath}}/dto/{{className}}Dto.java"),
		Vars: []string{
			"className", "fields", "hasHeader", "header", "imports",
			"packageName", "packagePath",
		},
	})
	register(&Descriptor{
		ID:       "migration",
		Category: CategoryMigration,
		Body:     asset("migration", "migration.sql.tmpl"),
		Path:     path("migration", "src/main/resources/db/migration/V{{migrationVersion}}__create_{{tableName}}.sql"),
		Vars: []string{
			"columns", "hasHeader", "header", "migrationVersion", "tableName",
		},
	})
	register(&Descriptor{
		ID:       "auditing-config",
		Category: CategoryConfig,
		Scope:    ScopeRun,
		Feature:  "auditing",
		Body:     asset("auditing-config", "auditing_config.java.tmpl"),
		Path:     path("auditing-config", "src/main/java/{{packagePath}}/config/AuditingConfig.java"),
		Vars:     []string{"hasHeader", "header", "packageName", "packagePath"},
	})
	register(&Descriptor{
		ID:       "cache-config",
		Category: CategoryConfig,
		Scope:    ScopeRun,
		Feature:  "caching",
		Body:     asset("cache-config", "cache_config.java.tmpl"),
		Path:     path("cache-config", "src/main/java/{{packagePath}}/config/CacheConfig.java"),
		Vars:     []string{"hasHeader", "header", "packageName", "packagePath"},
	})
}

// All returns every registered descriptor in registration order. The
// returned slice is a copy.
func All() []*Descriptor {
	out := make([]*Descriptor, len(ordered))
	copy(out, ordered)
	return out
}

// Lookup returns the descriptor with the given ID.
func Lookup(id string) (*Descriptor, bool) {
	d, ok := registry[id]
	return d, ok
}

// IDs returns the registered template identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
