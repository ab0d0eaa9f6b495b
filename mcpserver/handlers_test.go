package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersSchema = `
tables:
  - name: users
    fields:
      - name: id
        type: BIGINT
        primaryKey: true
        autoIncrement: true
      - name: username
        type: VARCHAR
        length: 50
        unique: true
`

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestHandleGenerateCRUD(t *testing.T) {
	t.Run("inline artifacts", func(t *testing.T) {
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{
			"schema": usersSchema,
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		text := resultText(t, result)
		assert.Contains(t, text, "=== src/main/java/com/example/app/entity/User.java ===")
		assert.Contains(t, text, "public class User {")
		assert.Contains(t, text, "=== src/main/resources/db/migration/V1__create_users.sql ===")
	})

	t.Run("writes to disk", func(t *testing.T) {
		root := t.TempDir()
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{
			"schema":   usersSchema,
			"write_to": root,
			"package":  "com.acme.shop",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		data, err := os.ReadFile(filepath.Join(root, "src/main/java/com/acme/shop/entity/User.java"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "package com.acme.shop.entity;")
	})

	t.Run("missing schema parameter", func(t *testing.T) {
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{
			"schema":  usersSchema,
			"dialect": "sqlite",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("batch with only failing tables is an error", func(t *testing.T) {
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{
			"schema": `
tables:
  - name: users
    fields:
      - name: id
        type: BIGINT
        primaryKey: true
      - name: email
        type: VARCHAR
      - name: email
        type: VARCHAR
`,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "duplicate field name")
	})

	t.Run("invalid document is rejected", func(t *testing.T) {
		result, err := handleGenerateCRUD(context.Background(), toolRequest("generate_crud", map[string]any{
			"schema": "tables: [",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleValidateSchema(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		result, err := handleValidateSchema(context.Background(), toolRequest("validate_schema", map[string]any{
			"schema": usersSchema,
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "ok     users (2 fields)")
	})

	t.Run("table failures are reported", func(t *testing.T) {
		result, err := handleValidateSchema(context.Background(), toolRequest("validate_schema", map[string]any{
			"schema": `
tables:
  - name: broken
    fields:
      - name: id
        type: CUSTOM_TYPE
        primaryKey: true
`,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "CUSTOM_TYPE")
	})
}

func TestHandleListTypeMappings(t *testing.T) {
	result, err := handleListTypeMappings(context.Background(), toolRequest("list_type_mappings", map[string]any{
		"dialect": "mysql",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Type mappings for dialect mysql")
	assert.Contains(t, text, "| BIGINT | Long |")
	assert.Contains(t, text, "VARCHAR(255)")
}

func TestCreateTools(t *testing.T) {
	tools := createTools()
	require.Len(t, tools, 3)

	names := make([]string, len(tools))
	for i, td := range tools {
		names[i] = td.Tool.Name
		require.NotNil(t, td.Handler)
	}
	assert.Equal(t, []string{"generate_crud", "validate_schema", "list_type_mappings"}, names)
}
