// Package testdoubles provides test doubles (spies, stubs, dummies) for the
// domain collaborator interfaces. These are hand-crafted implementations, no
// mock frameworks.
package testdoubles

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// ---------------------------------------------------------------------------
// SpyVCS
// ---------------------------------------------------------------------------

// SpyVCS implements domain.VCSClient as a configurable spy.
// Configure the response maps for the methods your test exercises, then
// inspect the call-tracking fields to verify behavior. Keys are repository
// URLs for remote operations and checkout paths for local ones.
type SpyVCS struct {
	// --- Clone ---
	CloneCommits map[string]string // url -> commit hash returned
	CloneErrs    map[string]error  // url -> error
	// spy: urls cloned, in order, and where each went
	ClonedURLs  []string
	ClonedDests map[string]string // url -> destPath

	// --- CurrentCommit ---
	CurrentCommits map[string]string // path -> commit hash
	CurrentErr     error

	// --- RemoteHeadCommit ---
	RemoteHeads map[string]string // url -> commit hash
	RemoteErr   error

	// --- Pull ---
	PullCommits map[string]string // path -> commit hash after pull
	PullErr     error
	// spy: paths pulled, in order
	PulledPaths []string
}

func (s *SpyVCS) Clone(_ context.Context, url, _, destPath string) (string, error) {
	s.ClonedURLs = append(s.ClonedURLs, url)
	if s.ClonedDests == nil {
		s.ClonedDests = make(map[string]string)
	}
	s.ClonedDests[url] = destPath

	if err, ok := s.CloneErrs[url]; ok {
		return "", err
	}
	if commit, ok := s.CloneCommits[url]; ok {
		return commit, nil
	}
	return "deadbeef", nil
}

func (s *SpyVCS) CurrentCommit(path string) (string, error) {
	if s.CurrentErr != nil {
		return "", s.CurrentErr
	}
	if commit, ok := s.CurrentCommits[path]; ok {
		return commit, nil
	}
	return "deadbeef", nil
}

func (s *SpyVCS) RemoteHeadCommit(_ context.Context, url, _ string) (string, error) {
	if s.RemoteErr != nil {
		return "", s.RemoteErr
	}
	if commit, ok := s.RemoteHeads[url]; ok {
		return commit, nil
	}
	return "", errors.New("no remote head configured for " + url)
}

func (s *SpyVCS) Pull(_ context.Context, path string) (string, error) {
	s.PulledPaths = append(s.PulledPaths, path)
	if s.PullErr != nil {
		return "", s.PullErr
	}
	if commit, ok := s.PullCommits[path]; ok {
		return commit, nil
	}
	return "deadbeef", nil
}

// ---------------------------------------------------------------------------
// SpyRunner
// ---------------------------------------------------------------------------

// SpyRunner implements domain.ProcessRunner as a configurable spy. Script
// exit codes are keyed by the script's base name so tests do not depend on
// absolute checkout paths.
type SpyRunner struct {
	// --- RunScript ---
	ScriptExitCodes map[string]int // base name -> exit code (default 0)
	ScriptErr       error
	// spy: scripts run, in order, with their working directories
	RanScripts []string
	RanDirs    []string

	// --- RunCommand ---
	CommandExitCode int
	CommandErr      error
	// spy: full argv of each command run
	RanCommands [][]string
}

func (s *SpyRunner) RunScript(_ context.Context, scriptPath, dir string, _ []string) (int, error) {
	s.RanScripts = append(s.RanScripts, scriptPath)
	s.RanDirs = append(s.RanDirs, dir)
	if s.ScriptErr != nil {
		return 255, s.ScriptErr
	}
	return s.ScriptExitCodes[filepath.Base(scriptPath)], nil
}

func (s *SpyRunner) RunCommand(_ context.Context, argv []string) (int, error) {
	s.RanCommands = append(s.RanCommands, argv)
	if s.CommandErr != nil {
		return 255, s.CommandErr
	}
	return s.CommandExitCode, nil
}

// ---------------------------------------------------------------------------
// StubDistroDetector
// ---------------------------------------------------------------------------

// StubDistroDetector implements domain.DistroDetector with a fixed answer.
type StubDistroDetector struct {
	Family string
}

func (s *StubDistroDetector) CurrentDistroFamily() string {
	if s.Family == "" {
		return "Arch"
	}
	return s.Family
}

// ---------------------------------------------------------------------------
// StubPackageQuery
// ---------------------------------------------------------------------------

// StubPackageQuery implements domain.PackageQuery from a fixed set of
// installed package names.
type StubPackageQuery struct {
	Installed map[string]bool
}

func (s *StubPackageQuery) IsInstalled(name string) bool {
	return s.Installed[name]
}

// ---------------------------------------------------------------------------
// SpyRepoStore
// ---------------------------------------------------------------------------

// SpyRepoStore implements domain.RepoStore as a configurable spy. All maps
// are keyed by the checkout's base directory name (the package name), so the
// same configuration answers for both staging and install paths.
type SpyRepoStore struct {
	// --- Files ---
	FileLists map[string][]string // name -> top-level file names
	FilesErr  error

	// --- Metadata ---
	Metas    map[string]*domain.PackageMetadata
	MetaErrs map[string]error
	// Unmarked names the checkouts without a compatibility marker; every
	// other checkout is treated as marked.
	Unmarked map[string]bool

	// --- Exists ---
	// Missing names the checkouts that do not exist; nil means every
	// checkout exists.
	Missing map[string]bool

	// --- Remove ---
	RemoveErr error
	// spy: base names removed, in order
	Removed []string
}

func (s *SpyRepoStore) Files(repoPath string) ([]string, error) {
	if s.FilesErr != nil {
		return nil, s.FilesErr
	}
	return s.FileLists[filepath.Base(repoPath)], nil
}

func (s *SpyRepoStore) Metadata(repoPath string) (*domain.PackageMetadata, bool, error) {
	name := filepath.Base(repoPath)
	if err, ok := s.MetaErrs[name]; ok {
		return nil, true, err
	}
	if s.Unmarked[name] {
		return nil, false, nil
	}
	return s.Metas[name], true, nil
}

func (s *SpyRepoStore) Exists(repoPath string) bool {
	return !s.Missing[filepath.Base(repoPath)]
}

func (s *SpyRepoStore) Remove(repoPath string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.Removed = append(s.Removed, filepath.Base(repoPath))
	return nil
}

// ---------------------------------------------------------------------------
// MemoryRegistry
// ---------------------------------------------------------------------------

// MemoryRegistry implements domain.InstallRegistry in memory.
type MemoryRegistry struct {
	ScopeValue domain.Scope
	Records    map[string]domain.InstalledRecord
	PutErr     error
	DeleteErr  error
}

// NewMemoryRegistry creates an empty in-memory registry for a scope.
func NewMemoryRegistry(scope domain.Scope) *MemoryRegistry {
	return &MemoryRegistry{
		ScopeValue: scope,
		Records:    make(map[string]domain.InstalledRecord),
	}
}

func (m *MemoryRegistry) Scope() domain.Scope {
	return m.ScopeValue
}

func (m *MemoryRegistry) Get(name string) (domain.InstalledRecord, bool) {
	record, ok := m.Records[name]
	return record, ok
}

func (m *MemoryRegistry) All() []domain.InstalledRecord {
	records := make([]domain.InstalledRecord, 0, len(m.Records))
	for _, record := range m.Records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

func (m *MemoryRegistry) Put(record domain.InstalledRecord) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Records[record.Name] = record
	return nil
}

func (m *MemoryRegistry) Delete(name string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Records, name)
	return nil
}

// Interface compliance checks.
var (
	_ domain.VCSClient       = (*SpyVCS)(nil)
	_ domain.ProcessRunner   = (*SpyRunner)(nil)
	_ domain.DistroDetector  = (*StubDistroDetector)(nil)
	_ domain.PackageQuery    = (*StubPackageQuery)(nil)
	_ domain.RepoStore       = (*SpyRepoStore)(nil)
	_ domain.InstallRegistry = (*MemoryRegistry)(nil)
)
