// Package schemaforge scaffolds Spring Boot / JPA CRUD code from a
// declarative table schema. A schema document describes tables and their
// columns in abstract SQL types; the generator projects each table
// through a dialect-aware type mapping table, renders a set of named
// templates (entity, repository, service, controller, DTO, migration),
// and reports the resulting artifacts as (path, content) pairs.
//
// The root package holds the error taxonomy shared by the pipeline.
// The pipeline itself is split across:
//
//   - schema: the immutable table/field model
//   - compiler/load: schema document loading and validation
//   - dialect: abstract type to Java/SQL type resolution
//   - template: the text template engine
//   - templates: the embedded template assets and their registry
//   - compiler/gen: the generation driver
//
// Front ends (the schemaforge CLI and the MCP server) sit on top and
// own all file system writes; the core never touches external state
// beyond reading its inputs.
package schemaforge
