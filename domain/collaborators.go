package domain

import "context"

// VCSClient abstracts the git operations the core depends on. Every method
// that reaches the network takes a context; failures surface as *VCSError.
type VCSClient interface {
	// Clone checks out url into destPath and returns the head commit hash.
	// When branch is non-empty that branch is checked out instead of the
	// remote default.
	Clone(ctx context.Context, url, branch, destPath string) (string, error)

	// CurrentCommit returns the head commit hash of a local checkout.
	CurrentCommit(path string) (string, error)

	// RemoteHeadCommit returns the current head commit hash of a remote
	// branch without a local checkout. When branch is empty the remote's
	// default branch head is returned.
	RemoteHeadCommit(ctx context.Context, url, branch string) (string, error)

	// Pull fast-forwards a local checkout to the remote state, discarding
	// local modifications, and returns the new head commit hash. An
	// already-up-to-date checkout is not an error.
	Pull(ctx context.Context, path string) (string, error)
}

// ProcessRunner spawns external executables and waits for them, passing
// stdout/stderr through. The returned int is the process exit code; the
// error is non-nil only when the process could not be spawned at all.
type ProcessRunner interface {
	// RunScript executes a lifecycle script with dir as working directory.
	// env entries are appended to the inherited environment.
	RunScript(ctx context.Context, scriptPath, dir string, env []string) (int, error)

	// RunCommand executes argv[0] with the remaining arguments.
	RunCommand(ctx context.Context, argv []string) (int, error)
}

// DistroDetector reports the base distribution family of the current host
// (e.g. "Arch", "Debian", "Fedora").
type DistroDetector interface {
	CurrentDistroFamily() string
}

// PackageQuery answers whether a native package (or the command it provides)
// is present on the host.
type PackageQuery interface {
	IsInstalled(name string) bool
}

// RepoStore abstracts access to checked-out package repositories on disk.
type RepoStore interface {
	// Files returns the top-level file names of a checkout.
	Files(repoPath string) ([]string, error)

	// Metadata loads the package's metadata declaration from a checkout.
	// marked is false when no compatibility marker is present; meta is nil
	// for a bare .gitpm marker with no metadata document. A present but
	// unparsable metadata file yields an error.
	Metadata(repoPath string) (meta *PackageMetadata, marked bool, err error)

	// Exists reports whether the checkout directory is present.
	Exists(repoPath string) bool

	// Remove deletes a checkout directory and everything under it.
	Remove(repoPath string) error
}

// InstallRegistry is the persisted store of installed-package records for
// one scope. Put and Delete rewrite the backing file atomically, so a crash
// mid-pipeline leaves the registry reflecting only fully completed steps.
type InstallRegistry interface {
	Scope() Scope
	Get(name string) (InstalledRecord, bool)
	All() []InstalledRecord
	Put(record InstalledRecord) error
	Delete(name string) error
}
