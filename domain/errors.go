package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistryCorrupt marks an unreadable or malformed persisted registry.
// It is fatal for the whole invocation; the registry is never silently reset.
var ErrRegistryCorrupt = errors.New("install registry is corrupt")

// MalformedSpecLineError reports a config line that could not be parsed into
// a PackageSpec. It is recoverable: the catalog builder skips the line with a
// warning instead of failing the build.
type MalformedSpecLineError struct {
	Line       string
	SourceFile string
}

func (e *MalformedSpecLineError) Error() string {
	return fmt.Sprintf("malformed spec line in %s: %q", e.SourceFile, e.Line)
}

// IncompatibleRepositoryError reports a repository that carries none of the
// compatibility markers (.gitpm, gitpm.json, .gitpm.json), or whose metadata
// file cannot be parsed.
type IncompatibleRepositoryError struct {
	Name   string
	Reason string
}

func (e *IncompatibleRepositoryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("repository %q is not gitpm-compatible: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf(
		"repository %q is not gitpm-compatible (missing marker file: .gitpm, gitpm.json or .gitpm.json)",
		e.Name,
	)
}

// CircularDependencyError reports a dependency cycle found during resolution.
// Chain lists the packages along the cycle, ending with the repeated name.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Chain, " -> "))
}

// ScopeConflictError reports a package that declares system_only while being
// resolved for a user-scope install.
type ScopeConflictError struct {
	Name string
}

func (e *ScopeConflictError) Error() string {
	return fmt.Sprintf(
		"package %q requires a system-wide installation (re-run with --system)",
		e.Name,
	)
}

// UnsatisfiedSystemDependencyError reports missing native packages that
// cannot be installed in the current scope/privilege combination.
type UnsatisfiedSystemDependencyError struct {
	Name    string
	Missing []string
}

func (e *UnsatisfiedSystemDependencyError) Error() string {
	return fmt.Sprintf(
		"package %q has unsatisfied system dependencies: %s",
		e.Name, strings.Join(e.Missing, ", "),
	)
}

// SystemDependencyInstallFailedError reports a native package install command
// that exited non-zero.
type SystemDependencyInstallFailedError struct {
	Name     string
	Packages []string
	ExitCode int
}

func (e *SystemDependencyInstallFailedError) Error() string {
	return fmt.Sprintf(
		"installing system dependencies for %q failed with exit code %d: %s",
		e.Name, e.ExitCode, strings.Join(e.Packages, ", "),
	)
}

// ScriptExecutionError reports a lifecycle script that exited non-zero.
type ScriptExecutionError struct {
	Script   string
	ExitCode int
}

func (e *ScriptExecutionError) Error() string {
	return fmt.Sprintf("script %q failed with exit code %d", e.Script, e.ExitCode)
}

// VCSError reports a failed git operation. It is fatal for the package being
// processed but never for the whole batch.
type VCSError struct {
	Op  string // "clone", "pull", "head", "ls-remote"
	URL string
	Err error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("git %s failed for %q: %v", e.Op, e.URL, e.Err)
}

func (e *VCSError) Unwrap() error { return e.Err }
