package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// Settings is the optional gitpm.yaml settings document. It only overrides
// filesystem locations; package specs always come from the repos*.conf
// catalog sources.
type Settings struct {
	User   ScopeSettings `yaml:"user"`
	System ScopeSettings `yaml:"system"`
}

// ScopeSettings overrides the default locations for one scope. Empty fields
// keep their defaults.
type ScopeSettings struct {
	AppsDir      string `yaml:"apps_dir"`
	ConfigDir    string `yaml:"config_dir"`
	RegistryFile string `yaml:"registry_file"`
}

func (s *Settings) scopeOverrides(scope domain.Scope) ScopeSettings {
	if s == nil {
		return ScopeSettings{}
	}
	if scope == domain.ScopeSystem {
		return s.System
	}
	return s.User
}

// LoadSettings reads and parses a settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse settings file %q: %w", path, unmarshalErr)
	}
	return &settings, nil
}

// FindSettingsFile searches the standard locations for a settings file and
// returns the first match.
func FindSettingsFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	var locations []string
	if homeDir != "" {
		locations = append(locations, filepath.Join(homeDir, ".config", "gitpm"))
	}
	locations = append(locations, "/etc/gitpm", systemXDGConfigDir)

	patterns := []string{"gitpm.yaml", "gitpm.yml"}

	for _, loc := range locations {
		for _, pattern := range patterns {
			p := filepath.Join(loc, pattern)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("settings file not found in default locations")
}

// LoadSettingsOrDefault returns the parsed settings file when one exists and
// zero-value settings otherwise. A present but unparsable file is an error.
func LoadSettingsOrDefault() (*Settings, error) {
	path, err := FindSettingsFile()
	if err != nil {
		return &Settings{}, nil //nolint:nilerr // absence of a settings file is the default
	}
	return LoadSettings(path)
}
