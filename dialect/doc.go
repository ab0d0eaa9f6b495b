// Package dialect maps abstract column types to Java types, validation
// annotations and SQL column definitions. Mappings are layered: config
// overrides, then the dialect-specific table, then the universal
// fallback; the first table holding a type wins.
package dialect
