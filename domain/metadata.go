package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SystemDep is one native-package requirement for a distro family: either a
// single required package or a group of alternatives where any installed
// member satisfies the requirement.
type SystemDep struct {
	Names []string
}

// RequiredPackage builds a single-package requirement.
func RequiredPackage(name string) SystemDep {
	return SystemDep{Names: []string{name}}
}

// AnyOfPackages builds an alternative group.
func AnyOfPackages(names ...string) SystemDep {
	return SystemDep{Names: names}
}

// IsAlternativeGroup reports whether more than one package can satisfy the
// requirement.
func (d SystemDep) IsAlternativeGroup() bool { return len(d.Names) > 1 }

func (d SystemDep) String() string {
	if d.IsAlternativeGroup() {
		return "(" + strings.Join(d.Names, " or ") + ")"
	}
	if len(d.Names) == 1 {
		return d.Names[0]
	}
	return ""
}

// PackageMetadata is the in-memory form of a package's dependency and
// compatibility declaration (gitpm.json / .gitpm.json). It is parsed fresh
// from the fetched repository on every resolution and never persisted on its
// own.
type PackageMetadata struct {
	// SystemOnly restricts the package to system-scope installs.
	SystemOnly bool

	// SystemDeps maps a distro family to its native-package requirements.
	SystemDeps map[string][]SystemDep

	// InstallMethods maps a distro family to the command template used to
	// install missing native packages. The empty key holds the global
	// "method" entry that applies to every family without an override.
	InstallMethods map[string]string

	// GitpmDeps lists other catalog packages this one depends on, parsed
	// from `url[,branch[,name]]` references.
	GitpmDeps []PackageSpec
}

// DepsFor returns the native-package requirements declared for a distro
// family.
func (m *PackageMetadata) DepsFor(distro string) []SystemDep {
	if m == nil || m.SystemDeps == nil {
		return nil
	}
	return m.SystemDeps[distro]
}

// InstallMethodFor returns the install command template for a distro family,
// falling back to the global method.
func (m *PackageMetadata) InstallMethodFor(distro string) string {
	if m == nil || m.InstallMethods == nil {
		return ""
	}
	if method, ok := m.InstallMethods[distro]; ok && method != "" {
		return method
	}
	return m.InstallMethods[""]
}

const methodKeySuffix = "_method"

// ParseMetadata decodes a gitpm.json document. origin names the file the
// document came from and is used for dependency-reference attribution and
// error messages.
func ParseMetadata(data []byte, origin string) (*PackageMetadata, error) {
	var raw struct {
		SystemOnly   bool `json:"system_only"`
		Dependencies struct {
			System map[string]json.RawMessage `json:"system"`
			Gitpm  []string                   `json:"gitpm"`
		} `json:"dependencies"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", origin, err)
	}

	meta := &PackageMetadata{SystemOnly: raw.SystemOnly}

	for key, value := range raw.Dependencies.System {
		switch {
		case key == "method":
			method, err := decodeString(value, origin, key)
			if err != nil {
				return nil, err
			}
			setInstallMethod(meta, "", method)
		case strings.HasSuffix(key, methodKeySuffix):
			method, err := decodeString(value, origin, key)
			if err != nil {
				return nil, err
			}
			setInstallMethod(meta, strings.TrimSuffix(key, methodKeySuffix), method)
		default:
			deps, err := decodeSystemDeps(value, origin, key)
			if err != nil {
				return nil, err
			}
			if meta.SystemDeps == nil {
				meta.SystemDeps = make(map[string][]SystemDep)
			}
			meta.SystemDeps[key] = deps
		}
	}

	for _, ref := range raw.Dependencies.Gitpm {
		spec, err := ParseSpecLine(ref, origin)
		if err != nil {
			return nil, fmt.Errorf("invalid gitpm dependency reference in %s: %q", origin, ref)
		}
		meta.GitpmDeps = append(meta.GitpmDeps, spec)
	}

	return meta, nil
}

func setInstallMethod(meta *PackageMetadata, distro, method string) {
	if meta.InstallMethods == nil {
		meta.InstallMethods = make(map[string]string)
	}
	meta.InstallMethods[distro] = method
}

func decodeString(value json.RawMessage, origin, key string) (string, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", fmt.Errorf("invalid %q entry in %s: expected a string", key, origin)
	}
	return s, nil
}

// decodeSystemDeps parses one distro entry: a list whose elements are either
// a package name or an array of alternative package names.
func decodeSystemDeps(value json.RawMessage, origin, distro string) ([]SystemDep, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(value, &entries); err != nil {
		return nil, fmt.Errorf(
			"invalid system dependency list for %q in %s: expected an array", distro, origin,
		)
	}

	deps := make([]SystemDep, 0, len(entries))
	for _, entry := range entries {
		var single string
		if err := json.Unmarshal(entry, &single); err == nil {
			if single != "" {
				deps = append(deps, RequiredPackage(single))
			}
			continue
		}

		var group []string
		if err := json.Unmarshal(entry, &group); err != nil {
			return nil, fmt.Errorf(
				"invalid system dependency entry for %q in %s: expected a name or an array of names",
				distro, origin,
			)
		}
		if len(group) > 0 {
			deps = append(deps, AnyOfPackages(group...))
		}
	}
	return deps, nil
}
