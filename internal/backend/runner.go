// internal/backend/runner.go
package backend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// ExecRunner runs commands with os/exec. The child is killed when ctx is
// cancelled and always waited on, so no process outlives a call.
type ExecRunner struct {
	// Env is appended to the current environment of every child
	Env []string
}

// Run implements printer.CommandRunner
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode, err := exitStatus(ctx, cmd.Run())
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

// exitStatus turns the result of cmd.Run into an exit code. A child that
// exited on its own reports its status even if ctx expired afterwards;
// ctx only explains a failure to run or a kill.
func exitStatus(ctx context.Context, runErr error) (int, error) {
	if runErr == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, runErr
}
