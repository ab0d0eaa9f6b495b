package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/schemaforge/schemaforge/compiler/gen"
)

// ToolHandler is the handler signature required by the MCP framework.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolDefinition pairs one tool definition with its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// featureUsage describes the feature flag parameter from the feature
// table, so the tool description stays in step with the generator.
func featureUsage() string {
	var parts []string
	for _, f := range gen.AllFeatures {
		parts = append(parts, fmt.Sprintf("'%s' (%s)", f.Name, f.Description))
	}
	return "Comma-separated default feature flags: " + strings.Join(parts, ", ")
}

// createTools returns the MCP tool definitions:
//   - generate_crud: renders the full CRUD scaffolding for a schema document
//   - validate_schema: checks a schema document without generating anything
//   - list_type_mappings: shows the type mapping table of a dialect
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("generate_crud",
				mcp.WithDescription("Generate Spring Boot CRUD scaffolding (entity, repository, service, controller, DTO, Flyway migration) from a declarative table schema"),
				mcp.WithString("schema",
					mcp.Required(),
					mcp.Description("Schema document in YAML or JSON"),
				),
				mcp.WithString("dialect",
					mcp.Description("Target database dialect: 'postgres', 'mysql' or 'oracle' (default: postgres)"),
					mcp.DefaultString("postgres"),
				),
				mcp.WithString("package",
					mcp.Description("Base Java package of the generated code (default: com.example.app)"),
					mcp.DefaultString("com.example.app"),
				),
				mcp.WithString("features",
					mcp.Description(featureUsage()),
				),
				mcp.WithString("header",
					mcp.Description("Comment line emitted at the top of every generated file"),
				),
				mcp.WithString("write_to",
					mcp.Description("Directory to write the files to; when absent, contents are returned inline"),
				),
				mcp.WithBoolean("fail_fast",
					mcp.Description("Stop at the first failing table instead of collecting all failures (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleGenerateCRUD,
		},
		{
			Tool: mcp.NewTool("validate_schema",
				mcp.WithDescription("Validate a declarative table schema document without generating code"),
				mcp.WithString("schema",
					mcp.Required(),
					mcp.Description("Schema document in YAML or JSON"),
				),
				mcp.WithString("dialect",
					mcp.Description("Target database dialect used for type resolution (default: postgres)"),
					mcp.DefaultString("postgres"),
				),
			),
			Handler: handleValidateSchema,
		},
		{
			Tool: mcp.NewTool("list_type_mappings",
				mcp.WithDescription("List how abstract column types map to Java types, bean validation and SQL column definitions for a dialect"),
				mcp.WithString("dialect",
					mcp.Description("Database dialect: 'postgres', 'mysql' or 'oracle' (default: postgres)"),
					mcp.DefaultString("postgres"),
				),
			),
			Handler: handleListTypeMappings,
		},
	}
}
