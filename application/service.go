// Package application sequences the install, update, and remove pipelines,
// driving the resolver, registry, VCS client, and script execution in order.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/FyreX-opensource-design/gitpm/config"
	"github.com/FyreX-opensource-design/gitpm/domain"
)

// PackageService orchestrates the package lifecycle for one scope. Pipelines
// run strictly sequentially; a failure in one package of a batch is recorded
// and the batch continues with the next package.
type PackageService struct {
	catalog  *config.Catalog
	registry domain.InstallRegistry
	resolver *Resolver
	decider  *UpdateDecider
	sysdeps  *SystemDeps
	vcs      domain.VCSClient
	runner   domain.ProcessRunner
	repos    domain.RepoStore
	paths    config.Paths
}

// NewPackageService wires the orchestrator from its collaborators.
func NewPackageService(
	catalog *config.Catalog,
	registry domain.InstallRegistry,
	resolver *Resolver,
	decider *UpdateDecider,
	sysdeps *SystemDeps,
	vcs domain.VCSClient,
	runner domain.ProcessRunner,
	repos domain.RepoStore,
	paths config.Paths,
) *PackageService {
	return &PackageService{
		catalog:  catalog,
		registry: registry,
		resolver: resolver,
		decider:  decider,
		sysdeps:  sysdeps,
		vcs:      vcs,
		runner:   runner,
		repos:    repos,
		paths:    paths,
	}
}

// InstallOptions holds per-install flags.
type InstallOptions struct {
	// Force skips the compatibility-marker check.
	Force bool
}

// Install resolves a package's dependency set and installs every missing
// package in dependency order. A step failure halts the plan at that
// package; steps already completed stay installed (no rollback).
func (s *PackageService) Install(ctx context.Context, name string, opts InstallOptions) error {
	if record, ok := s.registry.Get(name); ok {
		logger.Infof("%q is already installed at %s", name, record.InstallPath)
		return nil
	}

	staging, err := os.MkdirTemp("", "gitpm-resolve-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	installed := make(map[string]bool)
	for _, record := range s.registry.All() {
		installed[record.Name] = true
	}

	plan, err := s.resolver.Resolve(ctx, ResolveInput{
		Target:     name,
		Scope:      s.registry.Scope(),
		Catalog:    s.catalog,
		Installed:  installed,
		Force:      opts.Force,
		StagingDir: staging,
	})
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		logger.Infof("Nothing to install for %q", name)
		return nil
	}

	logger.Infof("Install plan: %s", strings.Join(plan.Names(), " -> "))

	for _, step := range plan {
		if stepErr := s.installStep(ctx, step); stepErr != nil {
			return fmt.Errorf("failed to install %q: %w", step.Name, stepErr)
		}
	}
	return nil
}

// installStep runs the per-package install pipeline: fetch to the install
// path, satisfy system dependencies, run the setup script, write the
// registry record. On failure the fresh checkout is removed so no
// half-installed package lingers without a record.
func (s *PackageService) installStep(ctx context.Context, spec domain.PackageSpec) error {
	scope := s.registry.Scope()
	installPath := s.paths.InstallPath(spec.Name)

	logger.Infof("Cloning %s to %s...", spec.URL, installPath)
	commit, err := s.vcs.Clone(ctx, spec.URL, spec.Branch, installPath)
	if err != nil {
		return err
	}

	fail := func(cause error) error {
		if removeErr := s.repos.Remove(installPath); removeErr != nil {
			logger.Warnf("Could not clean up %q: %v", installPath, removeErr)
		}
		return cause
	}

	meta, _, err := s.repos.Metadata(installPath)
	if err != nil {
		return fail(&domain.IncompatibleRepositoryError{Name: spec.Name, Reason: err.Error()})
	}

	if sysErr := s.sysdeps.Ensure(ctx, spec.Name, meta, scope); sysErr != nil {
		return fail(sysErr)
	}

	files, err := s.repos.Files(installPath)
	if err != nil {
		return fail(err)
	}

	selection := domain.SelectScript(files, domain.OpSetup, scope)
	if selection.Found() {
		logger.Infof("Running setup script: %s", selection.Path)
		code, runErr := s.runner.RunScript(ctx, filepath.Join(installPath, selection.Path), installPath, nil)
		if runErr != nil {
			return fail(fmt.Errorf("failed to run setup script: %w", runErr))
		}
		if code != 0 {
			return fail(&domain.ScriptExecutionError{Script: selection.Path, ExitCode: code})
		}
	}

	record := domain.InstalledRecord{
		Name:        spec.Name,
		URL:         spec.URL,
		Branch:      spec.Branch,
		CommitHash:  commit,
		Scope:       scope,
		InstallPath: installPath,
		SourceFile:  spec.SourceFile,
	}
	if putErr := s.registry.Put(record); putErr != nil {
		return fail(putErr)
	}

	logger.Infof("Successfully installed %q", spec.Name)
	return nil
}

// Update processes the named packages, or every installed package when
// names is empty. With checkOnly the pipeline stops after the update
// decision and mutates nothing. Per-package failures are collected; the
// batch continues.
func (s *PackageService) Update(ctx context.Context, names []string, checkOnly bool) error {
	var targets []domain.InstalledRecord
	if len(names) == 0 {
		targets = s.registry.All()
		if len(targets) == 0 {
			logger.Info("No packages installed.")
			return nil
		}
	} else {
		for _, name := range names {
			record, ok := s.registry.Get(name)
			if !ok {
				return fmt.Errorf("%q is not installed", name)
			}
			targets = append(targets, record)
		}
	}

	var failures []error
	for _, record := range targets {
		if err := s.updateOne(ctx, record, checkOnly); err != nil {
			logger.Errorf("Failed to update %q: %v", record.Name, err)
			failures = append(failures, fmt.Errorf("%s: %w", record.Name, err))
		}
	}
	return errors.Join(failures...)
}

func (s *PackageService) updateOne(ctx context.Context, record domain.InstalledRecord, checkOnly bool) error {
	if !s.repos.Exists(record.InstallPath) {
		return fmt.Errorf("install path %q does not exist", record.InstallPath)
	}

	switch s.decider.Decide(ctx, record) {
	case domain.NoUpdate:
		logger.Infof("%q is already up to date", record.Name)
		return nil
	case domain.Indeterminate:
		logger.Warnf("Could not determine update status for %q; skipping", record.Name)
		return nil
	case domain.UpdateAvailable:
	}

	if checkOnly {
		logger.Infof("Update available for %q", record.Name)
		return nil
	}

	logger.Infof("Updating %q...", record.Name)
	newCommit, err := s.vcs.Pull(ctx, record.InstallPath)
	if err != nil {
		return err
	}

	files, err := s.repos.Files(record.InstallPath)
	if err != nil {
		return err
	}

	// Update scripts fall back to re-running setup inside the selector.
	selection := domain.SelectScript(files, domain.OpUpdate, record.Scope)
	if selection.Found() {
		logger.Infof("Running update script: %s", selection.Path)
		code, runErr := s.runner.RunScript(ctx, filepath.Join(record.InstallPath, selection.Path), record.InstallPath, nil)
		if runErr != nil {
			return fmt.Errorf("failed to run update script: %w", runErr)
		}
		if code != 0 {
			return &domain.ScriptExecutionError{Script: selection.Path, ExitCode: code}
		}
	}

	record.CommitHash = newCommit
	if putErr := s.registry.Put(record); putErr != nil {
		return putErr
	}

	logger.Infof("Successfully updated %q", record.Name)
	return nil
}

// Remove runs the removal pipeline: best-effort removal script, install
// path deletion, registry cleanup. A failing removal script is reported but
// never blocks the cleanup; a missing install path still clears the record.
func (s *PackageService) Remove(ctx context.Context, name string) error {
	record, ok := s.registry.Get(name)
	if !ok {
		return fmt.Errorf("%q is not installed", name)
	}

	if !s.repos.Exists(record.InstallPath) {
		logger.Warnf("Install path %q does not exist; cleaning up registry entry", record.InstallPath)
		return s.registry.Delete(name)
	}

	if files, err := s.repos.Files(record.InstallPath); err == nil {
		selection := domain.SelectScript(files, domain.OpRemove, record.Scope)
		if selection.Found() {
			logger.Infof("Running removal script: %s", selection.Path)
			code, runErr := s.runner.RunScript(ctx, filepath.Join(record.InstallPath, selection.Path), record.InstallPath, nil)
			if runErr != nil {
				logger.Warnf("Removal script for %q could not run: %v", name, runErr)
			} else if code != 0 {
				logger.Warnf("Removal script for %q failed with exit code %d; continuing", name, code)
			}
		}
	}

	if err := s.repos.Remove(record.InstallPath); err != nil {
		return err
	}
	if err := s.registry.Delete(name); err != nil {
		return err
	}

	logger.Infof("Successfully removed %q", name)
	return nil
}

// ListAvailable returns every catalogued spec in precedence order.
func (s *PackageService) ListAvailable() []domain.PackageSpec {
	return s.catalog.All()
}

// ListInstalled returns this scope's installed records.
func (s *PackageService) ListInstalled() []domain.InstalledRecord {
	return s.registry.All()
}

// Search returns the catalogued specs matching a substring.
func (s *PackageService) Search(substring string) []domain.PackageSpec {
	return s.catalog.Search(substring)
}

// IsInstalled reports whether a package is installed in this scope.
func (s *PackageService) IsInstalled(name string) bool {
	_, ok := s.registry.Get(name)
	return ok
}
