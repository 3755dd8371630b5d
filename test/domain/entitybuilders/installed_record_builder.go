package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// InstalledRecordBuilder helps create test registry records with a fluent interface.
type InstalledRecordBuilder struct {
	*testkit.BaseBuilder
	name        string
	url         string
	branch      string
	commitHash  string
	scope       domain.Scope
	installPath string
	sourceFile  string
}

// NewInstalledRecordBuilder creates a new record builder with sensible defaults.
func NewInstalledRecordBuilder() *InstalledRecordBuilder {
	return &InstalledRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-package",
		url:         "https://github.com/test/test-package.git",
		branch:      "",
		commitHash:  "deadbeef",
		scope:       domain.ScopeUser,
		installPath: "/home/test/.local/share/apps/test-package",
		sourceFile:  "repos.conf",
	}
}

// WithName sets the package name and keeps the install path consistent.
func (b *InstalledRecordBuilder) WithName(name string) *InstalledRecordBuilder {
	b.name = name
	b.installPath = "/home/test/.local/share/apps/" + name
	return b
}

// WithURL sets the repository URL.
func (b *InstalledRecordBuilder) WithURL(url string) *InstalledRecordBuilder {
	b.url = url
	return b
}

// WithBranch sets the tracked branch.
func (b *InstalledRecordBuilder) WithBranch(branch string) *InstalledRecordBuilder {
	b.branch = branch
	return b
}

// WithCommitHash sets the recorded commit hash.
func (b *InstalledRecordBuilder) WithCommitHash(hash string) *InstalledRecordBuilder {
	b.commitHash = hash
	return b
}

// WithScope sets the install scope.
func (b *InstalledRecordBuilder) WithScope(scope domain.Scope) *InstalledRecordBuilder {
	b.scope = scope
	return b
}

// WithInstallPath sets the install path explicitly.
func (b *InstalledRecordBuilder) WithInstallPath(path string) *InstalledRecordBuilder {
	b.installPath = path
	return b
}

// WithSourceFile sets the originating config file.
func (b *InstalledRecordBuilder) WithSourceFile(source string) *InstalledRecordBuilder {
	b.sourceFile = source
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *InstalledRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *InstalledRecordBuilder) BuildRecord() domain.InstalledRecord {
	return domain.InstalledRecord{
		Name:        b.name,
		URL:         b.url,
		Branch:      b.branch,
		CommitHash:  b.commitHash,
		Scope:       b.scope,
		InstallPath: b.installPath,
		SourceFile:  b.sourceFile,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *InstalledRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.url = "https://github.com/test/test-package.git"
	b.branch = ""
	b.commitHash = "deadbeef"
	b.scope = domain.ScopeUser
	b.installPath = "/home/test/.local/share/apps/test-package"
	b.sourceFile = "repos.conf"
	return b
}

// Clone creates a deep copy of the InstalledRecordBuilder.
func (b *InstalledRecordBuilder) Clone() testkit.Builder {
	return &InstalledRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		url:         b.url,
		branch:      b.branch,
		commitHash:  b.commitHash,
		scope:       b.scope,
		installPath: b.installPath,
		sourceFile:  b.sourceFile,
	}
}
