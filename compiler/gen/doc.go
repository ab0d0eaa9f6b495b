// Package gen drives a generation run: it projects each loaded table
// through the type mapping table into a flat variable environment,
// renders every feature-enabled template in parallel and aggregates the
// artifacts into a deterministic report. The package holds artifacts in
// memory; WriteFiles is the only operation that touches disk.
package gen
