// Package pkgquery answers native-package presence checks by probing for the
// command a package provides.
package pkgquery

import (
	"os/exec"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// CommandQuery implements domain.PackageQuery via PATH lookup: a dependency
// counts as installed when the command it names is resolvable.
type CommandQuery struct{}

var _ domain.PackageQuery = (*CommandQuery)(nil)

// NewCommandQuery creates a PATH-probing package query.
func NewCommandQuery() *CommandQuery {
	return &CommandQuery{}
}

// IsInstalled reports whether the named command is present on PATH.
func (q *CommandQuery) IsInstalled(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
