package cmd

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/FyreX-opensource-design/gitpm/application"
	"github.com/FyreX-opensource-design/gitpm/config"
	"github.com/FyreX-opensource-design/gitpm/domain"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/distro"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/execrunner"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/pkgquery"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/registry"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/repostore"
	"github.com/FyreX-opensource-design/gitpm/infrastructure/vcs"
)

// buildService wires the full collaborator graph for the selected scope via
// a DIG container and returns the orchestrating service.
func buildService() (*application.PackageService, error) {
	container := dig.New()

	constructors := []any{
		currentScope,
		config.LoadSettingsOrDefault,
		config.NewPaths,
		buildCatalog,
		func() domain.VCSClient { return vcs.NewGitClient() },
		func() domain.ProcessRunner { return execrunner.NewExecRunner() },
		func() domain.DistroDetector { return distro.NewOSReleaseDetector() },
		func() domain.PackageQuery { return pkgquery.NewCommandQuery() },
		func() domain.RepoStore { return repostore.NewDiskRepoStore() },
		buildRegistry,
		application.NewResolver,
		application.NewUpdateDecider,
		application.NewSystemDeps,
		application.NewPackageService,
	}
	for _, ctor := range constructors {
		if err := container.Provide(ctor); err != nil {
			return nil, fmt.Errorf("failed to build service container: %w", err)
		}
	}

	var svc *application.PackageService
	if err := container.Invoke(func(s *application.PackageService) { svc = s }); err != nil {
		return nil, fmt.Errorf("failed to build service container: %w", err)
	}
	return svc, nil
}

func currentScope() domain.Scope {
	if systemScope {
		return domain.ScopeSystem
	}
	return domain.ScopeUser
}

func buildCatalog(paths config.Paths) *config.Catalog {
	sources := paths.CatalogSources()
	if len(sources) == 0 {
		logger.Warnf(
			"No repos*.conf config files found (looked in /etc/xdg/gitpm and %s)",
			paths.ConfigDir,
		)
	}
	return config.BuildCatalog(sources)
}

func buildRegistry(scope domain.Scope, paths config.Paths) (domain.InstallRegistry, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}
	return registry.NewFileRegistry(scope, paths.RegistryFile)
}
