package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/schema"
)

func TestRegistry(t *testing.T) {
	t.Run("all descriptors present", func(t *testing.T) {
		assert.ElementsMatch(t, []string{
			"entity", "repository", "service", "controller",
			"dto", "migration", "auditing-config", "cache-config",
		}, IDs())
		assert.Len(t, All(), 8)
	})

	t.Run("lookup", func(t *testing.T) {
		d, ok := Lookup("entity")
		require.True(t, ok)
		assert.Equal(t, CategoryEntity, d.Category)
		assert.Equal(t, ScopeTable, d.Scope)

		_, ok = Lookup("nonexistent")
		assert.False(t, ok)
	})

	t.Run("declared variables cover template bodies", func(t *testing.T) {
		for _, d := range All() {
			declared := make(map[string]struct{}, len(d.Vars))
			for _, v := range d.Vars {
				declared[v] = struct{}{}
			}
			for _, v := range d.Body.Vars() {
				_, ok := declared[v]
				assert.True(t, ok, "descriptor %s: body references undeclared %q", d.ID, v)
			}
			for _, v := range d.Path.Vars() {
				_, ok := declared[v]
				assert.True(t, ok, "descriptor %s: path references undeclared %q", d.ID, v)
			}
		}
	})

	t.Run("feature gates", func(t *testing.T) {
		entity, _ := Lookup("entity")
		auditCfg, _ := Lookup("auditing-config")
		cacheCfg, _ := Lookup("cache-config")

		none := schema.FeatureSet{}
		assert.True(t, entity.Enabled(none))
		assert.False(t, auditCfg.Enabled(none))
		assert.False(t, cacheCfg.Enabled(none))

		assert.True(t, auditCfg.Enabled(schema.FeatureSet{Auditing: true}))
		assert.True(t, cacheCfg.Enabled(schema.FeatureSet{Caching: true}))
		assert.Equal(t, ScopeRun, auditCfg.Scope)
	})
}

func entityContext() map[string]any {
	return map[string]any{
		"hasHeader":   false,
		"header":      "",
		"packageName": "com.example.app",
		"packagePath": "com/example/app",
		"className":   "User",
		"entityVar":   "user",
		"tableName":   "users",
		"restPath":    "users",
		"idType":      "Long",
		"idName":      "id",
		"idMethod":    "Id",
		"imports":     []string{},
		"auditing":    false,
		"softDelete":  false,
		"caching":     false,
		"fields": []map[string]any{
			{
				"name": "id", "column": "id", "javaType": "Long", "methodName": "Id",
				"primaryKey": true, "autoIncrement": true, "unique": false,
				"notNullable": true, "hasValidation": false, "validation": "",
			},
			{
				"name": "username", "column": "username", "javaType": "String", "methodName": "Username",
				"primaryKey": false, "autoIncrement": false, "unique": true,
				"notNullable": true, "hasValidation": true, "validation": "@Size(max = 50)",
			},
		},
	}
}

func TestRenderEntity(t *testing.T) {
	d, ok := Lookup("entity")
	require.True(t, ok)

	out, err := d.Body.Render(entityContext())
	require.NoError(t, err)

	assert.Contains(t, out, "package com.example.app.entity;")
	assert.Contains(t, out, "@Table(name = \"users\")")
	assert.Contains(t, out, "public class User {")
	assert.Contains(t, out, "@GeneratedValue(strategy = GenerationType.IDENTITY)")
	assert.Contains(t, out, "private Long id;")
	assert.Contains(t, out, "@Size(max = 50)")
	assert.Contains(t, out, "@Column(name = \"username\", unique = true, nullable = false)")
	assert.Contains(t, out, "public String getUsername() {")
	assert.NotContains(t, out, "{{")
	assert.NotContains(t, out, "AuditingEntityListener")
	assert.NotContains(t, out, "deleted")

	p, err := d.Path.Render(entityContext())
	require.NoError(t, err)
	assert.Equal(t, "src/main/java/com/example/app/entity/User.java", p)
}

func TestRenderEntityWithFeatures(t *testing.T) {
	d, _ := Lookup("entity")
	ctx := entityContext()
	ctx["auditing"] = true
	ctx["softDelete"] = true

	out, err := d.Body.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "@EntityListeners(AuditingEntityListener.class)")
	assert.Contains(t, out, "private Instant createdAt;")
	assert.Contains(t, out, "private boolean deleted;")
	assert.Contains(t, out, "public boolean isDeleted() {")
}

func TestRenderRepository(t *testing.T) {
	d, _ := Lookup("repository")

	t.Run("plain", func(t *testing.T) {
		out, err := d.Body.Render(entityContext())
		require.NoError(t, err)
		assert.Contains(t, out, "public interface UserRepository extends JpaRepository<User, Long> {")
		assert.NotContains(t, out, "softDeleteById")
	})

	t.Run("soft delete methods", func(t *testing.T) {
		ctx := entityContext()
		ctx["softDelete"] = true
		out, err := d.Body.Render(ctx)
		require.NoError(t, err)
		assert.Contains(t, out, "List<User> findAllByDeletedFalse();")
		assert.Contains(t, out, "void softDeleteById(@Param(\"id\") Long id);")
	})
}

func TestRenderService(t *testing.T) {
	d, _ := Lookup("service")
	ctx := entityContext()
	ctx["caching"] = true

	out, err := d.Body.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "public class UserService {")
	assert.Contains(t, out, "@Cacheable(value = \"users\", key = \"#id\")")
	assert.Contains(t, out, "@CacheEvict(value = \"users\", key = \"#id\")")
	assert.Contains(t, out, "return repository.findById(id).orElseThrow();")
}

func TestRenderController(t *testing.T) {
	d, _ := Lookup("controller")

	out, err := d.Body.Render(entityContext())
	require.NoError(t, err)
	assert.Contains(t, out, "@RequestMapping(\"/api/users\")")
	assert.Contains(t, out, "public User get(@PathVariable Long id) {")
	assert.Contains(t, out, "user.setId(id);")
}

func TestRenderMigration(t *testing.T) {
	d, _ := Lookup("migration")
	ctx := map[string]any{
		"hasHeader":        false,
		"header":           "",
		"tableName":        "users",
		"migrationVersion": "1",
		"columns": []map[string]any{
			{"def": "id BIGSERIAL PRIMARY KEY"},
			{"def": "username VARCHAR(50) NOT NULL UNIQUE"},
		},
	}

	out, err := d.Body.Render(ctx)
	require.NoError(t, err)
	want := "CREATE TABLE users (\n" +
		"    id BIGSERIAL PRIMARY KEY,\n" +
		"    username VARCHAR(50) NOT NULL UNIQUE\n" +
		");\n"
	assert.Equal(t, want, out)

	p, err := d.Path.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "src/main/resources/db/migration/V1__create_users.sql", p)
}

func TestRenderHeader(t *testing.T) {
	d, _ := Lookup("cache-config")
	ctx := map[string]any{
		"hasHeader":   true,
		"header":      "Generated file, do not edit.",
		"packageName": "com.example.app",
		"packagePath": "com/example/app",
	}

	out, err := d.Body.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "// Generated file, do not edit.\npackage com.example.app.config;")
	assert.Contains(t, out, "@EnableCaching")
}
