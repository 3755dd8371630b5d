package application

import (
	"context"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// SystemDeps evaluates a package's native-package requirements for the
// current distro family and installs the missing set when the scope and
// privileges allow it.
type SystemDeps struct {
	detector domain.DistroDetector
	query    domain.PackageQuery
	runner   domain.ProcessRunner
	euid     func() int
}

// NewSystemDeps creates the system-dependency evaluator.
func NewSystemDeps(
	detector domain.DistroDetector,
	query domain.PackageQuery,
	runner domain.ProcessRunner,
) *SystemDeps {
	return &SystemDeps{
		detector: detector,
		query:    query,
		runner:   runner,
		euid:     os.Geteuid,
	}
}

// Ensure checks the requirements declared for the current distro and
// installs whatever is missing. An alternative group is satisfied by any
// installed member; when installation is needed its first member is the one
// installed. Without system scope or elevated privileges, missing packages
// fail with UnsatisfiedSystemDependencyError before any install attempt.
func (s *SystemDeps) Ensure(
	ctx context.Context,
	pkgName string,
	meta *domain.PackageMetadata,
	scope domain.Scope,
) error {
	if meta == nil {
		return nil
	}

	family := s.detector.CurrentDistroFamily()
	missing, display := s.missingFor(meta, family)
	if len(missing) == 0 {
		return nil
	}

	logger.Infof(
		"Package %q is missing system dependencies on %s: %s",
		pkgName, family, strings.Join(display, ", "),
	)

	if scope != domain.ScopeSystem && !s.elevated(ctx) {
		return &domain.UnsatisfiedSystemDependencyError{Name: pkgName, Missing: display}
	}

	method := meta.InstallMethodFor(family)
	if method == "" {
		// Nothing declares how to install on this distro.
		return &domain.UnsatisfiedSystemDependencyError{Name: pkgName, Missing: display}
	}

	argv := append(strings.Fields(method), missing...)
	logger.Infof("Running: %s", strings.Join(argv, " "))

	code, err := s.runner.RunCommand(ctx, argv)
	if err != nil || code != 0 {
		return &domain.SystemDependencyInstallFailedError{
			Name:     pkgName,
			Packages: missing,
			ExitCode: code,
		}
	}
	return nil
}

// missingFor returns the package names to install and their display forms
// (alternative groups shown as "(a or b)"). The install set is deduplicated;
// a name required on its own and again as a group's first alternative is
// installed once.
func (s *SystemDeps) missingFor(meta *domain.PackageMetadata, family string) ([]string, []string) {
	var missing, display []string
	seen := make(map[string]bool)
	for _, dep := range meta.DepsFor(family) {
		if len(dep.Names) == 0 {
			continue
		}
		satisfied := false
		for _, candidate := range dep.Names {
			if s.query.IsInstalled(candidate) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			display = append(display, dep.String())
			if !seen[dep.Names[0]] {
				seen[dep.Names[0]] = true
				missing = append(missing, dep.Names[0])
			}
		}
	}
	return missing, display
}

// elevated reports whether native packages can be installed from user scope:
// either running as root or holding a cached sudo credential.
func (s *SystemDeps) elevated(ctx context.Context) bool {
	if s.euid() == 0 {
		return true
	}
	code, err := s.runner.RunCommand(ctx, []string{"sudo", "-n", "true"})
	return err == nil && code == 0
}
