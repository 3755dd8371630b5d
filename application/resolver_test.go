package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FyreX-opensource-design/gitpm/application"
	"github.com/FyreX-opensource-design/gitpm/config"
	"github.com/FyreX-opensource-design/gitpm/domain"
	testdoubles "github.com/FyreX-opensource-design/gitpm/test"
)

func catalogOf(specs ...domain.PackageSpec) *config.Catalog {
	catalog := config.NewCatalog()
	for _, spec := range specs {
		catalog.Add(spec)
	}
	return catalog
}

func specFor(name string) domain.PackageSpec {
	return domain.PackageSpec{
		Name:       name,
		URL:        "https://github.com/acme/" + name + ".git",
		SourceFile: "repos.conf",
	}
}

func depsOn(names ...string) *domain.PackageMetadata {
	meta := &domain.PackageMetadata{}
	for _, name := range names {
		meta.GitpmDeps = append(meta.GitpmDeps, specFor(name))
	}
	return meta
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("should order dependencies before dependents", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{"app": depsOn("lib")},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), specFor("lib")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"lib", "app"}, plan.Names())
	})

	t.Run("should skip dependencies that are already installed", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{"app": depsOn("lib")},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), specFor("lib")),
			Installed:  map[string]bool{"lib": true},
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"app"}, plan.Names())
		assert.NotContains(t, vcs.ClonedURLs, specFor("lib").URL)
	})

	t.Run("should visit shared dependencies once", func(t *testing.T) {
		t.Parallel()

		// given - app depends on lib and tool, both depend on base
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{
				"app":  depsOn("lib", "tool"),
				"lib":  depsOn("base"),
				"tool": depsOn("base"),
			},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), specFor("lib"), specFor("tool"), specFor("base")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"base", "lib", "tool", "app"}, plan.Names())
	})

	t.Run("should fail on a dependency cycle", func(t *testing.T) {
		t.Parallel()

		// given - app -> lib -> app
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{
				"app": depsOn("lib"),
				"lib": depsOn("app"),
			},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		_, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), specFor("lib")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.Error(t, err)
		var cycle *domain.CircularDependencyError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, []string{"app", "lib", "app"}, cycle.Chain)
	})

	t.Run("should reject a repository without a compatibility marker", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{Unmarked: map[string]bool{"app": true}}
		resolver := application.NewResolver(vcs, repos)

		// when
		_, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.Error(t, err)
		var incompatible *domain.IncompatibleRepositoryError
		require.ErrorAs(t, err, &incompatible)
		assert.Equal(t, "app", incompatible.Name)
	})

	t.Run("should accept an unmarked repository with force", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{Unmarked: map[string]bool{"app": true}}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app")),
			Installed:  map[string]bool{},
			Force:      true,
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"app"}, plan.Names())
	})

	t.Run("should reject unparsable metadata as incompatible", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			MetaErrs: map[string]error{"app": assert.AnError},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		_, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		var incompatible *domain.IncompatibleRepositoryError
		require.ErrorAs(t, err, &incompatible)
		assert.NotEmpty(t, incompatible.Reason)
	})

	t.Run("should reject a system-only dependency under user scope before fetching its deps", func(t *testing.T) {
		t.Parallel()

		// given - app depends on daemon (system-only), daemon depends on base
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{
				"app": depsOn("daemon"),
				"daemon": {
					SystemOnly: true,
					GitpmDeps:  []domain.PackageSpec{specFor("base")},
				},
			},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		_, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), specFor("daemon"), specFor("base")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.Error(t, err)
		var conflict *domain.ScopeConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "daemon", conflict.Name)
		assert.NotContains(t, vcs.ClonedURLs, specFor("base").URL)
	})

	t.Run("should allow a system-only package under system scope", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{"daemon": {SystemOnly: true}},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "daemon",
			Scope:      domain.ScopeSystem,
			Catalog:    catalogOf(specFor("daemon")),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"daemon"}, plan.Names())
	})

	t.Run("should prefer the catalogued spec over a raw dependency reference", func(t *testing.T) {
		t.Parallel()

		// given - metadata references lib by a different URL than the catalog
		catalogLib := domain.PackageSpec{
			Name: "lib",
			URL:  "https://github.com/official/lib.git",
		}
		vcs := &testdoubles.SpyVCS{}
		repos := &testdoubles.SpyRepoStore{
			Metas: map[string]*domain.PackageMetadata{"app": depsOn("lib")},
		}
		resolver := application.NewResolver(vcs, repos)

		// when
		plan, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "app",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(specFor("app"), catalogLib),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Contains(t, vcs.ClonedURLs, "https://github.com/official/lib.git")
		assert.Equal(t, []string{"lib", "app"}, plan.Names())
	})

	t.Run("should fail for a target missing from every config source", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := application.NewResolver(&testdoubles.SpyVCS{}, &testdoubles.SpyRepoStore{})

		// when
		_, err := resolver.Resolve(context.Background(), application.ResolveInput{
			Target:     "ghost",
			Scope:      domain.ScopeUser,
			Catalog:    catalogOf(),
			Installed:  map[string]bool{},
			StagingDir: t.TempDir(),
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})
}
