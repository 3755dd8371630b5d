package domain

// UpdateStatus is the tagged outcome of an update check for one installed
// package.
type UpdateStatus int

const (
	// NoUpdate means the installed revision matches the remote.
	NoUpdate UpdateStatus = iota
	// UpdateAvailable means a newer revision exists.
	UpdateAvailable
	// Indeterminate means neither the check script nor the commit
	// comparison could decide (e.g. unreachable remote). Callers skip the
	// package without reporting it as updated or failed.
	Indeterminate
)

func (s UpdateStatus) String() string {
	switch s {
	case NoUpdate:
		return "up to date"
	case UpdateAvailable:
		return "update available"
	default:
		return "indeterminate"
	}
}
