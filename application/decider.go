package application

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// Check-script exit codes: 0 means up to date, 1 means update available.
// Anything else discards the script's signal.
const (
	checkExitNoUpdate  = 0
	checkExitAvailable = 1
)

// UpdateDecider determines whether a newer version exists for an installed
// package: the package's check script decides when it exists and answers
// cleanly, otherwise the recorded commit hash is compared against the remote
// branch head.
type UpdateDecider struct {
	vcs    domain.VCSClient
	runner domain.ProcessRunner
	repos  domain.RepoStore
}

// NewUpdateDecider creates an update decider.
func NewUpdateDecider(
	vcs domain.VCSClient,
	runner domain.ProcessRunner,
	repos domain.RepoStore,
) *UpdateDecider {
	return &UpdateDecider{vcs: vcs, runner: runner, repos: repos}
}

// Decide returns the update status for one installed record. A failed
// remote lookup yields Indeterminate; callers skip the package without
// reporting it as updated or failed.
func (d *UpdateDecider) Decide(ctx context.Context, record domain.InstalledRecord) domain.UpdateStatus {
	files, err := d.repos.Files(record.InstallPath)
	if err != nil {
		logger.Warnf("Could not list %q: %v", record.InstallPath, err)
	}

	selection := domain.SelectScript(files, domain.OpCheck, record.Scope)
	if selection.Found() {
		scriptPath := filepath.Join(record.InstallPath, selection.Path)
		logger.Debugf("Running check script %s for %q", selection.Path, record.Name)

		code, runErr := d.runner.RunScript(ctx, scriptPath, record.InstallPath, nil)
		switch {
		case runErr == nil && code == checkExitNoUpdate:
			return domain.NoUpdate
		case runErr == nil && code == checkExitAvailable:
			return domain.UpdateAvailable
		default:
			logger.Warnf(
				"Check script for %q returned exit code %d; falling back to commit comparison",
				record.Name, code,
			)
		}
	}

	remote, err := d.vcs.RemoteHeadCommit(ctx, record.URL, record.Branch)
	if err != nil {
		logger.Warnf("Could not query remote head for %q: %v", record.Name, err)
		return domain.Indeterminate
	}
	if remote == record.CommitHash {
		return domain.NoUpdate
	}
	return domain.UpdateAvailable
}
