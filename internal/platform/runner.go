// Package platform implements the per-OS URL extraction strategies as
// ordered fallback chains of native automation techniques.
package platform

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/frkavka/browser-info/internal/domain"
)

// CommandRunner abstracts child-process execution for testing. The
// context carries the stage's hard deadline; a process still running at
// the deadline is killed, not merely flagged late.
type CommandRunner interface {
	// Output runs the command and returns captured stdout and stderr.
	Output(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// RealCommandRunner executes real system commands.
type RealCommandRunner struct{}

// Output executes a command under the context deadline.
func (r *RealCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil // Prevent any interactive prompts

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// runErrToDomain maps a child-process failure to the error taxonomy.
// Deadline overruns become Timeout so callers can tell a hung script
// from a script that ran and failed.
func runErrToDomain(ctx context.Context, what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.Wrap(domain.KindTimeout, what+" exceeded its budget", err)
	}
	return domain.Wrap(domain.KindPlatformError, what+" failed", err)
}

// FileChecker abstracts file existence checks for testing.
type FileChecker interface {
	Exists(path string) bool
}

// RealFileChecker checks the real filesystem.
type RealFileChecker struct{}

// Exists checks if a file/directory exists.
func (r *RealFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
