// Package mcpserver exposes the generator over the Model Context
// Protocol: generate_crud renders the scaffolding for a schema
// document, validate_schema checks one without rendering, and
// list_type_mappings shows a dialect's mapping table. The server is a
// thin adapter; all semantics live in compiler/load and compiler/gen.
package mcpserver
