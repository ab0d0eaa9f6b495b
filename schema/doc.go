// Package schema defines the in-memory model of a declarative table
// schema: tables, fields, abstract column types, foreign-key references
// and per-table feature toggles. Values are built once by
// compiler/load and immutable afterwards.
package schema
