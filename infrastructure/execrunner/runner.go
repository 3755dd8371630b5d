// Package execrunner implements the domain.ProcessRunner capability with
// os/exec: scripts and commands run to completion with stdout/stderr passed
// through, and the exit code is surfaced to the caller.
package execrunner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const (
	scriptFileMode = 0o755

	// spawnFailureCode is reported when the process could not be started
	// at all, mirroring the shell's command-not-found convention.
	spawnFailureCode = 255
)

// ExecRunner runs external executables sequentially; a script blocks the
// pipeline until it exits. No timeout is applied.
type ExecRunner struct{}

// NewExecRunner creates a process runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// RunScript executes a lifecycle script inside dir. Shell scripts run via
// bash (made executable first, best-effort), .py scripts via python3.
func (r *ExecRunner) RunScript(ctx context.Context, scriptPath, dir string, env []string) (int, error) {
	var cmd *exec.Cmd
	if strings.HasSuffix(scriptPath, ".py") {
		cmd = exec.CommandContext(ctx, "python3", scriptPath)
	} else {
		if chmodErr := os.Chmod(scriptPath, scriptFileMode); chmodErr != nil {
			logger.Debugf("Could not mark script %q executable: %v", scriptPath, chmodErr)
		}
		cmd = exec.CommandContext(ctx, "bash", scriptPath)
	}

	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	return waitExitCode(cmd)
}

// RunCommand executes argv[0] with the remaining arguments.
func (r *ExecRunner) RunCommand(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return spawnFailureCode, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return waitExitCode(cmd)
}

func waitExitCode(cmd *exec.Cmd) (int, error) {
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return spawnFailureCode, err
}
