package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/logger"
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

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger() (*logger.CLILogger, *bytes.Buffer) {
	log := logger.NewCLILogger()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	return log, &buf
}

func TestGenerateCommand(t *testing.T) {
	t.Run("writes scaffolding", func(t *testing.T) {
		dir := t.TempDir()
		out := t.TempDir()
		schemaPath := writeFile(t, dir, "schema.yaml", usersSchema)
		log, buf := testLogger()

		cmd := newGenerateCmd(log)
		cmd.SetArgs([]string{schemaPath, "--out", out})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(out, "src/main/java/com/example/app/entity/User.java"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "public class User {")
		assert.Contains(t, buf.String(), "entity/User.java")
		assert.Contains(t, buf.String(), "wrote 6 file(s)")
	})

	t.Run("flags override defaults", func(t *testing.T) {
		dir := t.TempDir()
		out := t.TempDir()
		schemaPath := writeFile(t, dir, "schema.yaml", usersSchema)
		log, _ := testLogger()

		cmd := newGenerateCmd(log)
		cmd.SetArgs([]string{schemaPath, "--out", out, "--dialect", "mysql", "--package", "com.acme.shop"})
		require.NoError(t, cmd.Execute())

		entity, err := os.ReadFile(filepath.Join(out, "src/main/java/com/acme/shop/entity/User.java"))
		require.NoError(t, err)
		assert.Contains(t, string(entity), "package com.acme.shop.entity;")

		migration, err := os.ReadFile(filepath.Join(out, "src/main/resources/db/migration/V1__create_users.sql"))
		require.NoError(t, err)
		assert.Contains(t, string(migration), "AUTO_INCREMENT")
	})

	t.Run("template restriction", func(t *testing.T) {
		dir := t.TempDir()
		out := t.TempDir()
		schemaPath := writeFile(t, dir, "schema.yaml", usersSchema)
		log, _ := testLogger()

		cmd := newGenerateCmd(log)
		cmd.SetArgs([]string{schemaPath, "--out", out, "--template", "entity,repository"})
		require.NoError(t, cmd.Execute())

		_, err := os.Stat(filepath.Join(out, "src/main/java/com/example/app/entity/User.java"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(out, "src/main/java/com/example/app/service/UserService.java"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("partial failure exits nonzero", func(t *testing.T) {
		dir := t.TempDir()
		schemaPath := writeFile(t, dir, "schema.yaml", usersSchema+`
  - name: broken
    fields:
      - name: id
        type: CUSTOM_TYPE
        primaryKey: true
`)
		log, buf := testLogger()

		cmd := newGenerateCmd(log)
		cmd.SetArgs([]string{schemaPath, "--out", t.TempDir()})
		require.Error(t, cmd.Execute())
		assert.Contains(t, buf.String(), "skipped table broken")
	})

	t.Run("missing schema file", func(t *testing.T) {
		log, _ := testLogger()
		cmd := newGenerateCmd(log)
		cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, cmd.Execute())
	})
}

func TestResolveFlags(t *testing.T) {
	t.Run("config file with overrides", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeFile(t, dir, "config.yaml", `
package: com.config.app
dialect: mysql
features:
  caching: true
`)
		f := &generateFlags{config: configPath, dialect: "postgres"}
		_, d, err := f.resolve()
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})

	t.Run("unknown dialect", func(t *testing.T) {
		f := &generateFlags{dialect: "sqlite"}
		_, _, err := f.resolve()
		assert.Error(t, err)
	})

	t.Run("unknown feature", func(t *testing.T) {
		f := &generateFlags{features: "metrics"}
		_, _, err := f.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics")
	})

	t.Run("unknown template", func(t *testing.T) {
		f := &generateFlags{only: []string{"bogus"}}
		_, _, err := f.resolve()
		assert.Error(t, err)
	})
}
