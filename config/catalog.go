package config

import (
	"bufio"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// Catalog is the merged, name-keyed set of package specs from every config
// source. Names are unique: when multiple sources declare the same name the
// earliest-seen spec wins. Lookups are case-insensitive, matching the
// original conf-line semantics.
type Catalog struct {
	specs map[string]domain.PackageSpec // keyed by lower-cased name
	order []string                      // lower-cased names in first-seen order
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{specs: make(map[string]domain.PackageSpec)}
}

// Add inserts a spec unless its name is already taken. It returns false when
// the name was already present (the earlier spec is kept).
func (c *Catalog) Add(spec domain.PackageSpec) bool {
	key := strings.ToLower(spec.Name)
	if _, exists := c.specs[key]; exists {
		return false
	}
	c.specs[key] = spec
	c.order = append(c.order, key)
	return true
}

// Get returns the spec registered under a name.
func (c *Catalog) Get(name string) (domain.PackageSpec, bool) {
	spec, ok := c.specs[strings.ToLower(name)]
	return spec, ok
}

// All returns every spec in first-seen order.
func (c *Catalog) All() []domain.PackageSpec {
	result := make([]domain.PackageSpec, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.specs[key])
	}
	return result
}

// Search returns the specs whose name, owner, or source file contains the
// given substring (case-insensitive).
func (c *Catalog) Search(substring string) []domain.PackageSpec {
	needle := strings.ToLower(substring)
	var result []domain.PackageSpec
	for _, key := range c.order {
		spec := c.specs[key]
		if strings.Contains(strings.ToLower(spec.Name), needle) ||
			strings.Contains(strings.ToLower(domain.RepoOwnerFromURL(spec.URL)), needle) ||
			strings.Contains(strings.ToLower(spec.SourceFile), needle) {
			result = append(result, spec)
		}
	}
	return result
}

// Len returns the number of catalogued specs.
func (c *Catalog) Len() int { return len(c.specs) }

// BuildCatalog reads every config source in order and merges the parsed
// specs into one catalog. Unreadable files and malformed lines are skipped
// with a warning; the build never fails for one bad line.
func BuildCatalog(sources []string) *Catalog {
	catalog := NewCatalog()

	for _, source := range sources {
		file, err := os.Open(source)
		if err != nil {
			logger.Warnf("Could not read config file %q: %v", source, err)
			continue
		}

		label := sourceLabel(source)
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			spec, parseErr := domain.ParseSpecLine(line, label)
			if parseErr != nil {
				logger.Warnf("Skipping %v", parseErr)
				continue
			}

			if !catalog.Add(spec) {
				earlier, _ := catalog.Get(spec.Name)
				logger.Warnf(
					"Duplicate package name %q in %s ignored (kept entry from %s)",
					spec.Name, label, earlier.SourceFile,
				)
			}
		}
		if scanErr := scanner.Err(); scanErr != nil {
			logger.Warnf("Error reading config file %q: %v", source, scanErr)
		}
		_ = file.Close()
	}

	return catalog
}

// sourceLabel shortens a config path for display, tagging system-owned files
// the way the registry and list output expect them.
func sourceLabel(path string) string {
	base := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		base = path[idx+1:]
	}
	if strings.HasPrefix(path, "/etc") {
		return "[system]" + base
	}
	return base
}
