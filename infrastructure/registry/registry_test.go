package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FyreX-opensource-design/gitpm/domain"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/registry"
	"github.com/FyreX-opensource-design/gitpm/test/domain/entitybuilders"
)

func TestNewFileRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should start empty when the file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")

		// when
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)

		// then
		require.NoError(t, err)
		assert.Empty(t, reg.All())
		assert.Equal(t, domain.ScopeUser, reg.Scope())
	})

	t.Run("should fail on a malformed registry file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		// when
		_, err := registry.NewFileRegistry(domain.ScopeUser, path)

		// then
		require.ErrorIs(t, err, domain.ErrRegistryCorrupt)
	})

	t.Run("should tolerate an empty registry file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		// when
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)

		// then
		require.NoError(t, err)
		assert.Empty(t, reg.All())
	})
}

func TestFileRegistry_Put(t *testing.T) {
	t.Parallel()

	t.Run("should persist records across reloads", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)
		require.NoError(t, err)

		record := entitybuilders.NewInstalledRecordBuilder().
			WithName("widget").
			WithBranch("develop").
			WithCommitHash("aaaa1111").
			BuildRecord()

		// when
		require.NoError(t, reg.Put(record))
		reloaded, err := registry.NewFileRegistry(domain.ScopeUser, path)

		// then
		require.NoError(t, err)
		got, ok := reloaded.Get("widget")
		require.True(t, ok)
		assert.Equal(t, record, got)
	})

	t.Run("should replace an existing record under the same name", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)
		require.NoError(t, err)

		builder := entitybuilders.NewInstalledRecordBuilder().WithName("widget")
		require.NoError(t, reg.Put(builder.WithCommitHash("aaaa1111").BuildRecord()))

		// when
		require.NoError(t, reg.Put(builder.WithCommitHash("bbbb2222").BuildRecord()))

		// then
		require.Len(t, reg.All(), 1)
		got, _ := reg.Get("widget")
		assert.Equal(t, "bbbb2222", got.CommitHash)
	})
}

func TestFileRegistry_Delete(t *testing.T) {
	t.Parallel()

	t.Run("should drop the record and persist the removal", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)
		require.NoError(t, err)
		record := entitybuilders.NewInstalledRecordBuilder().WithName("widget").BuildRecord()
		require.NoError(t, reg.Put(record))

		// when
		require.NoError(t, reg.Delete("widget"))
		reloaded, err := registry.NewFileRegistry(domain.ScopeUser, path)

		// then
		require.NoError(t, err)
		assert.Empty(t, reloaded.All())
	})

	t.Run("should ignore deleting an absent name", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)
		require.NoError(t, err)

		// when
		err = reg.Delete("ghost")

		// then
		require.NoError(t, err)
	})
}

func TestFileRegistry_All(t *testing.T) {
	t.Parallel()

	t.Run("should return records sorted by name", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "installed.json")
		reg, err := registry.NewFileRegistry(domain.ScopeUser, path)
		require.NoError(t, err)
		builder := entitybuilders.NewInstalledRecordBuilder()
		require.NoError(t, reg.Put(builder.WithName("zeta").BuildRecord()))
		require.NoError(t, reg.Put(builder.WithName("alpha").BuildRecord()))

		// when
		all := reg.All()

		// then
		require.Len(t, all, 2)
		assert.Equal(t, "alpha", all[0].Name)
		assert.Equal(t, "zeta", all[1].Name)
	})
}
