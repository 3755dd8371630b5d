package application

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/FyreX-opensource-design/gitpm/config"
	"github.com/FyreX-opensource-design/gitpm/domain"
)

// Resolver expands a target package into an ordered, deduplicated install
// plan covering the target and its transitive gitpm dependencies. Metadata
// is read from staging checkouts; nothing is installed during resolution.
type Resolver struct {
	vcs   domain.VCSClient
	repos domain.RepoStore
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(vcs domain.VCSClient, repos domain.RepoStore) *Resolver {
	return &Resolver{vcs: vcs, repos: repos}
}

// ResolveInput carries one resolution request.
type ResolveInput struct {
	Target  string
	Scope   domain.Scope
	Catalog *config.Catalog

	// Installed holds the names already present in the registry for this
	// scope. Resolving an installed name is a no-op, not a reinstall.
	Installed map[string]bool

	// Force skips the compatibility-marker check.
	Force bool

	// StagingDir receives the temporary checkouts used to read metadata.
	// The caller owns its cleanup.
	StagingDir string
}

// Resolve builds the install plan for a target, dependencies first. A cycle
// anywhere in the graph fails with CircularDependencyError; a system-only
// dependency under user scope fails with ScopeConflictError before its own
// dependencies are fetched.
func (r *Resolver) Resolve(ctx context.Context, in ResolveInput) (domain.InstallPlan, error) {
	spec, ok := in.Catalog.Get(in.Target)
	if !ok {
		return nil, fmt.Errorf("no package named %q in any config source", in.Target)
	}

	walk := &resolveWalk{
		resolver: r,
		in:       in,
		visiting: make(map[string]bool),
		added:    make(map[string]bool),
	}
	if err := walk.visit(ctx, spec); err != nil {
		return nil, err
	}
	return walk.plan, nil
}

// resolveWalk is the accumulator for one resolution pass: an explicit
// visiting-set guards against cycles, added dedupes diamond dependencies.
type resolveWalk struct {
	resolver *Resolver
	in       ResolveInput
	visiting map[string]bool
	chain    []string
	added    map[string]bool
	plan     domain.InstallPlan
}

func (w *resolveWalk) visit(ctx context.Context, spec domain.PackageSpec) error {
	name := spec.Name

	if w.in.Installed[name] {
		logger.Debugf("Dependency %q is already installed; skipping", name)
		return nil
	}
	if w.added[name] {
		return nil
	}
	if w.visiting[name] {
		cycle := append(append([]string{}, w.chain...), name)
		return &domain.CircularDependencyError{Chain: cycle}
	}

	w.visiting[name] = true
	w.chain = append(w.chain, name)
	defer func() {
		delete(w.visiting, name)
		w.chain = w.chain[:len(w.chain)-1]
	}()

	stagePath := filepath.Join(w.in.StagingDir, name)
	if _, err := w.resolver.vcs.Clone(ctx, spec.URL, spec.Branch, stagePath); err != nil {
		return fmt.Errorf("failed to inspect %q: %w", name, err)
	}

	meta, marked, err := w.resolver.repos.Metadata(stagePath)
	if err != nil {
		return &domain.IncompatibleRepositoryError{Name: name, Reason: err.Error()}
	}
	if !marked && !w.in.Force {
		return &domain.IncompatibleRepositoryError{Name: name}
	}
	if meta != nil && meta.SystemOnly && w.in.Scope == domain.ScopeUser {
		return &domain.ScopeConflictError{Name: name}
	}

	if meta != nil {
		for _, dep := range meta.GitpmDeps {
			// A catalogued entry for the same name takes precedence over
			// the raw dependency reference.
			depSpec := dep
			if cataloged, found := w.in.Catalog.Get(dep.Name); found {
				depSpec = cataloged
			}
			if visitErr := w.visit(ctx, depSpec); visitErr != nil {
				return visitErr
			}
		}
	}

	w.added[name] = true
	w.plan = append(w.plan, spec)
	return nil
}
