package gen

import "github.com/schemaforge/schemaforge/schema"

// A Feature of the scaffolding codegen. Enabling a feature changes the
// template selection and the shape of the rendered artifacts.
type Feature struct {
	// Name of the feature, as written in schema and config documents.
	Name string

	// A Description of this feature.
	Description string

	// Templates lists the registry identifiers that only render when
	// this feature is enabled.
	Templates []string
}

var (
	// FeatureAuditing adds createdAt/updatedAt columns to entities and
	// migrations and generates the JPA auditing configuration class.
	FeatureAuditing = Feature{
		Name:        "auditing",
		Description: "Adds audited createdAt/updatedAt fields and the @EnableJpaAuditing configuration",
		Templates:   []string{"auditing-config"},
	}

	// FeatureSoftDelete replaces physical deletes with a deleted flag
	// and filters it in repository and service queries.
	FeatureSoftDelete = Feature{
		Name:        "softdelete",
		Description: "Adds a deleted flag column and soft-delete repository and service methods",
	}

	// FeatureCaching annotates service reads with @Cacheable and
	// generates the cache configuration class.
	FeatureCaching = Feature{
		Name:        "caching",
		Description: "Adds @Cacheable/@CacheEvict service annotations and the @EnableCaching configuration",
		Templates:   []string{"cache-config"},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureAuditing,
		FeatureSoftDelete,
		FeatureCaching,
	}
)

// Enabled reports whether the feature is active in the given set.
func (f Feature) Enabled(fs schema.FeatureSet) bool {
	return fs.Enabled(f.Name)
}

// mergeFeatures combines run-level default flags with a table's own
// flags. A feature is active when either side enables it.
func mergeFeatures(base, t schema.FeatureSet) schema.FeatureSet {
	return schema.FeatureSet{
		Auditing:   base.Auditing || t.Auditing,
		SoftDelete: base.SoftDelete || t.SoftDelete,
		Caching:    base.Caching || t.Caching,
	}
}
