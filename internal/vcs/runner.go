package vcs

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultTimeout bounds every spawned VCS command.
const DefaultTimeout = 10 * time.Second

// Result holds the captured output of a completed command.
type Result struct {
	Stdout   string
	ExitCode int
}

// Runner abstracts shell command execution for testability.
type Runner interface {
	Run(dir string, name string, args ...string) (Result, error)
}

// ExecRunner runs actual commands via os/exec. Each call spawns exactly one
// child process with the given working directory, buffers stdout and stderr
// fully in memory, and waits for the process to exit. Calls are independent;
// no serialization is imposed across concurrent callers.
type ExecRunner struct {
	// Timeout bounds a single command. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (r *ExecRunner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *ExecRunner) Run(dir string, name string, args ...string) (Result, error) {
	timeout := r.timeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Stdout: stdout.String(), ExitCode: 0}, nil
	}

	// The context expiring kills the child; report it as a spawn failure
	// carrying the configured timeout rather than a plain exit error.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{}, &SpawnError{
			Cmd:     name,
			Args:    args,
			Stderr:  stderr.String(),
			Timeout: timeout,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{}, &ExitError{
			Cmd:    name,
			Args:   args,
			Code:   exitErr.ExitCode(),
			Stderr: stderr.String(),
		}
	}

	return Result{}, &SpawnError{
		Cmd:    name,
		Args:   args,
		Stderr: stderr.String(),
		Err:    err,
	}
}
