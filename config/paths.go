package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// systemXDGConfigDir holds catalog sources that apply to every scope.
const systemXDGConfigDir = "/etc/xdg/gitpm"

// Paths groups the per-scope filesystem locations gitpm works with.
type Paths struct {
	Scope        domain.Scope
	AppsDir      string // packages are checked out under AppsDir/<name>
	ConfigDir    string // scope-owned catalog sources live here
	RegistryFile string
}

// DefaultPaths returns the standard locations for a scope. User scope
// resolves against the invoking user's home directory.
func DefaultPaths(scope domain.Scope) (Paths, error) {
	if scope == domain.ScopeSystem {
		return Paths{
			Scope:        scope,
			AppsDir:      "/opt/apps",
			ConfigDir:    "/etc/gitpm",
			RegistryFile: "/etc/gitpm/installed.json",
		}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", "gitpm")
	return Paths{
		Scope:        scope,
		AppsDir:      filepath.Join(home, ".local", "share", "apps"),
		ConfigDir:    configDir,
		RegistryFile: filepath.Join(configDir, "installed.json"),
	}, nil
}

// NewPaths builds the effective paths for a scope, applying any overrides
// from the settings file.
func NewPaths(scope domain.Scope, settings *Settings) (Paths, error) {
	paths, err := DefaultPaths(scope)
	if err != nil {
		return Paths{}, err
	}

	override := settings.scopeOverrides(scope)
	if override.AppsDir != "" {
		paths.AppsDir = override.AppsDir
	}
	if override.ConfigDir != "" {
		paths.ConfigDir = override.ConfigDir
	}
	if override.RegistryFile != "" {
		paths.RegistryFile = override.RegistryFile
	}
	return paths, nil
}

// EnsureDirs creates the apps and config directories if they are missing.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.AppsDir, p.ConfigDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return nil
}

// InstallPath returns the checkout directory for a package name.
func (p Paths) InstallPath(name string) string {
	return filepath.Join(p.AppsDir, name)
}

// CatalogSources returns every repos*.conf file to read, in precedence
// order: the shared system xdg directory first, then the scope's own config
// directory, files sorted lexically within each directory. Earlier sources
// win on duplicate package names.
func (p Paths) CatalogSources() []string {
	var sources []string
	for _, dir := range []string{systemXDGConfigDir, p.ConfigDir} {
		matches, err := filepath.Glob(filepath.Join(dir, "repos*.conf"))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		sources = append(sources, matches...)
	}
	return sources
}
