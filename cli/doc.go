// Package cli implements the schemaforge command line: generate for
// one-shot rendering, watch for incremental regeneration on file
// changes, and mcp for serving the generator over stdio.
package cli
