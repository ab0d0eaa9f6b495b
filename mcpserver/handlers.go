package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/schemaforge/schemaforge/compiler/gen"
	"github.com/schemaforge/schemaforge/compiler/load"
	"github.com/schemaforge/schemaforge/dialect"
	"github.com/schemaforge/schemaforge/schema"
)

// handleGenerateCRUD loads the schema document, renders every enabled
// template and either writes the files to disk or returns their
// contents inline.
func handleGenerateCRUD(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema parameter required: %v", err)), nil
	}

	d, err := dialect.Lookup(request.GetString("dialect", "postgres"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	features, err := schema.ParseFeatures(request.GetString("features", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := load.Load([]byte(doc), d)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema document rejected: %v", err)), nil
	}

	g, err := gen.NewGenerator(
		gen.WithPackage(request.GetString("package", "com.example.app")),
		gen.WithDialect(d),
		gen.WithFeatures(features),
		gen.WithFailFast(request.GetBool("fail_fast", false)),
		gen.WithHeader(request.GetString("header", "")),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := g.Generate(ctx, res.Tables)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation aborted: %v", err)), nil
	}
	if err := report.Err(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d file(s) for %d table(s) (run %s)\n",
		len(report.Artifacts), len(res.Tables), report.RunID)
	for _, f := range res.Failures {
		fmt.Fprintf(&b, "table %s skipped: %v\n", f.Table, f.Err)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(&b, "table %s template %s failed: %v\n", f.Table, f.Template, f.Err)
	}

	// A run that produced nothing but has failures is a failed run,
	// even when every failure happened at load time.
	if len(report.Artifacts) == 0 && len(res.Failures)+len(report.Failures) > 0 {
		return mcp.NewToolResultError("generation failed: no artifacts produced\n" + b.String()), nil
	}

	if root := request.GetString("write_to", ""); root != "" {
		n, err := report.WriteFiles(root, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("write failed: %v", err)), nil
		}
		fmt.Fprintf(&b, "\nWrote %d file(s) under %s\n", n, root)
		for _, a := range report.Artifacts {
			fmt.Fprintf(&b, "  %s\n", a.Path)
		}
		return mcp.NewToolResultText(b.String()), nil
	}

	for _, a := range report.Artifacts {
		fmt.Fprintf(&b, "\n=== %s ===\n%s", a.Path, a.Content)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleValidateSchema loads the schema document and reports the
// per-table outcome without rendering anything.
func handleValidateSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema parameter required: %v", err)), nil
	}
	d, err := dialect.Lookup(request.GetString("dialect", "postgres"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := load.Load([]byte(doc), d)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema document rejected: %v", err)), nil
	}

	var b strings.Builder
	for _, t := range res.Tables {
		fmt.Fprintf(&b, "ok     %s (%d fields)\n", t.Name, len(t.Fields))
	}
	for _, f := range res.Failures {
		fmt.Fprintf(&b, "failed %s: %v\n", f.Table, f.Err)
	}
	if len(res.Failures) > 0 {
		fmt.Fprintf(&b, "\n%d of %d table(s) failed validation\n",
			len(res.Failures), len(res.Tables)+len(res.Failures))
		return mcp.NewToolResultError(b.String()), nil
	}
	fmt.Fprintf(&b, "\nAll %d table(s) valid\n", len(res.Tables))
	return mcp.NewToolResultText(b.String()), nil
}

// handleListTypeMappings renders the mapping table of a dialect as a
// markdown table. Parametrized types are shown with representative
// parameters.
func handleListTypeMappings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := dialect.Lookup(request.GetString("dialect", "postgres"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Type mappings for dialect %s\n\n", d.Name())
	b.WriteString("| Abstract type | Java type | Validation | SQL column |\n")
	b.WriteString("|---|---|---|---|\n")
	params := dialect.Params{Length: dialect.DefaultLength, Precision: 10, Scale: 2}
	for _, t := range schema.Types() {
		entry, err := d.Resolve(t, params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		validation := entry.Validation
		if validation == "" {
			validation = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", t, entry.JavaType, validation, entry.SQLType)
	}
	return mcp.NewToolResultText(b.String()), nil
}
