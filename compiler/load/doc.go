// Package load reads the two input documents of a generation run: the
// declarative table schema and the generator configuration. Documents
// are YAML or JSON; the schema document is validated structurally
// against an embedded JSON Schema and semantically against the type
// mapping table before any rendering starts. Validation failures are
// isolated per table.
package load
