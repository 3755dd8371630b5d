// Package registry persists installed-package records as one JSON file per
// scope. The file maps package name to record; every mutation rewrites the
// whole file atomically so a crash mid-pipeline leaves only fully completed
// steps behind.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

const registryFileMode = 0o644

// FileRegistry implements domain.InstallRegistry on a JSON file.
type FileRegistry struct {
	scope   domain.Scope
	path    string
	records map[string]domain.InstalledRecord
}

var _ domain.InstallRegistry = (*FileRegistry)(nil)

// NewFileRegistry loads the registry file for a scope. A missing file yields
// an empty registry; an unreadable or malformed file is fatal and surfaces
// as domain.ErrRegistryCorrupt. The registry is never silently reset.
func NewFileRegistry(scope domain.Scope, path string) (*FileRegistry, error) {
	reg := &FileRegistry{
		scope:   scope,
		path:    path,
		records: make(map[string]domain.InstalledRecord),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, path, err)
	}

	if len(data) > 0 {
		if unmarshalErr := json.Unmarshal(data, &reg.records); unmarshalErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, path, unmarshalErr)
		}
	}
	return reg, nil
}

func (r *FileRegistry) Scope() domain.Scope { return r.scope }

// Get returns the record registered under a name.
func (r *FileRegistry) Get(name string) (domain.InstalledRecord, bool) {
	record, ok := r.records[name]
	return record, ok
}

// All returns every record, sorted by name for stable output.
func (r *FileRegistry) All() []domain.InstalledRecord {
	result := make([]domain.InstalledRecord, 0, len(r.records))
	for _, record := range r.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Put inserts or replaces a record and persists the registry.
func (r *FileRegistry) Put(record domain.InstalledRecord) error {
	r.records[record.Name] = record
	return r.persist()
}

// Delete removes a record and persists the registry. Deleting an absent name
// is a no-op.
func (r *FileRegistry) Delete(name string) error {
	if _, ok := r.records[name]; !ok {
		return nil
	}
	delete(r.records, name)
	return r.persist()
}

// persist rewrites the whole registry file via a temp-file rename.
func (r *FileRegistry) persist() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".installed-*.json")
	if err != nil {
		return fmt.Errorf("failed to create registry temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write registry: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, registryFileMode); chmodErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set registry permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, r.path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace registry file: %w", renameErr)
	}
	return nil
}
