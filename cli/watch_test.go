package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/compiler/gen"
)

func TestRegenerate(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.yaml", usersSchema)
	snapPath := filepath.Join(out, snapshotFile)
	f := &generateFlags{out: out}
	log, buf := testLogger()

	prev, err := gen.LoadSnapshot(snapPath)
	require.NoError(t, err)
	require.Empty(t, prev.Digests)

	t.Run("first pass writes everything", func(t *testing.T) {
		snap, err := regenerate(context.Background(), log, f, schemaPath, snapPath, prev)
		require.NoError(t, err)
		assert.Len(t, snap.Digests, 6)
		assert.Contains(t, buf.String(), "6 file(s) changed, 0 removed")

		_, err = os.Stat(filepath.Join(out, "src/main/java/com/example/app/entity/User.java"))
		assert.NoError(t, err)
		_, err = os.Stat(snapPath)
		assert.NoError(t, err)
		prev = snap
	})

	t.Run("unchanged schema rewrites nothing", func(t *testing.T) {
		buf.Reset()
		snap, err := regenerate(context.Background(), log, f, schemaPath, snapPath, prev)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "0 file(s) changed, 0 removed")
		prev = snap
	})

	t.Run("edit rewrites only affected files", func(t *testing.T) {
		buf.Reset()
		writeFile(t, dir, "schema.yaml", usersSchema+`      - name: email
        type: VARCHAR
`)
		snap, err := regenerate(context.Background(), log, f, schemaPath, snapPath, prev)
		require.NoError(t, err)
		// Repository and service do not mention fields, so they keep
		// their digests.
		changed := snap.Changed(prev)
		assert.Contains(t, changed, "src/main/java/com/example/app/entity/User.java")
		assert.NotContains(t, changed, "src/main/java/com/example/app/repository/UserRepository.java")

		data, err := os.ReadFile(filepath.Join(out, "src/main/java/com/example/app/entity/User.java"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "email")
		prev = snap
	})

	t.Run("removed table deletes its files", func(t *testing.T) {
		buf.Reset()
		writeFile(t, dir, "schema.yaml", `
tables:
  - name: groups
    fields:
      - name: id
        type: BIGINT
        primaryKey: true
        autoIncrement: true
`)
		snap, err := regenerate(context.Background(), log, f, schemaPath, snapPath, prev)
		require.NoError(t, err)
		assert.Contains(t, snap.Removed(prev), "src/main/java/com/example/app/entity/User.java")

		_, err = os.Stat(filepath.Join(out, "src/main/java/com/example/app/entity/User.java"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(out, "src/main/java/com/example/app/entity/Group.java"))
		assert.NoError(t, err)
	})

	t.Run("broken schema leaves snapshot intact", func(t *testing.T) {
		writeFile(t, dir, "schema.yaml", "tables: [")
		_, err := regenerate(context.Background(), log, f, schemaPath, snapPath, prev)
		assert.Error(t, err)
	})
}
