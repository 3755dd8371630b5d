package domain

// Scope selects where a package is installed: into the invoking user's home
// directories or into system-wide locations. It determines the install path,
// the registry file, and the privilege requirements.
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeSystem Scope = "system"
)

// Operation identifies a lifecycle stage that may have a script in the
// package repository.
type Operation string

const (
	OpSetup  Operation = "setup"
	OpUpdate Operation = "update"
	OpCheck  Operation = "check"
	OpRemove Operation = "remove"
)

// PackageSpec is one declarative package entry from a catalog source.
// Name is the identity key; when a config line carries no explicit name it
// defaults to the repository name derived from the URL.
type PackageSpec struct {
	Name       string
	URL        string
	Branch     string // empty means the remote's default branch
	SourceFile string // config file the spec was loaded from
}

// InstalledRecord is the persisted registry entry for one installed package.
// At most one record exists per name per scope.
type InstalledRecord struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Branch      string `json:"branch,omitempty"`
	CommitHash  string `json:"commit_hash"`
	Scope       Scope  `json:"scope"`
	InstallPath string `json:"path"`
	SourceFile  string `json:"source_file,omitempty"`
}

// InstallPlan is an ordered sequence of packages to install, dependencies
// before dependents, with no name repeated. It is built per invocation and
// never persisted.
type InstallPlan []PackageSpec

// Names returns the plan's package names in install order.
func (p InstallPlan) Names() []string {
	names := make([]string, 0, len(p))
	for _, step := range p {
		names = append(names, step.Name)
	}
	return names
}
