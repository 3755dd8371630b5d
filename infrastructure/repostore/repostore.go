// Package repostore gives the core filesystem access to checked-out package
// repositories: top-level file listings (for script selection), metadata and
// compatibility markers, and checkout removal.
package repostore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// markerFile is the bare compatibility marker; metadataFiles may carry a
// dependency declaration in addition to marking compatibility.
const markerFile = ".gitpm"

var metadataFiles = []string{"gitpm.json", ".gitpm.json"}

// DiskRepoStore implements domain.RepoStore on the local filesystem.
type DiskRepoStore struct{}

var _ domain.RepoStore = (*DiskRepoStore)(nil)

// NewDiskRepoStore creates a filesystem-backed repo store.
func NewDiskRepoStore() *DiskRepoStore {
	return &DiskRepoStore{}
}

// Files returns the names of the regular files in the checkout root.
func (s *DiskRepoStore) Files(repoPath string) ([]string, error) {
	entries, err := os.ReadDir(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository %q: %w", repoPath, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Metadata loads the compatibility declaration from a checkout. A JSON
// metadata file is parsed; the bare .gitpm marker yields (nil, true, nil);
// no marker at all yields (nil, false, nil). A metadata file that exists but
// cannot be parsed is an error; the package fails rather than being
// installed with its declaration ignored.
func (s *DiskRepoStore) Metadata(repoPath string) (*domain.PackageMetadata, bool, error) {
	for _, name := range metadataFiles {
		path := filepath.Join(repoPath, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, true, fmt.Errorf("failed to read %s: %w", name, err)
		}

		meta, parseErr := domain.ParseMetadata(data, name)
		if parseErr != nil {
			return nil, true, parseErr
		}
		return meta, true, nil
	}

	if info, err := os.Stat(filepath.Join(repoPath, markerFile)); err == nil && !info.IsDir() {
		return nil, true, nil
	}
	return nil, false, nil
}

// Exists reports whether the checkout directory is present.
func (s *DiskRepoStore) Exists(repoPath string) bool {
	info, err := os.Stat(repoPath)
	return err == nil && info.IsDir()
}

// Remove deletes a checkout directory and everything under it.
func (s *DiskRepoStore) Remove(repoPath string) error {
	if err := os.RemoveAll(repoPath); err != nil {
		return fmt.Errorf("failed to remove %q: %w", repoPath, err)
	}
	return nil
}
