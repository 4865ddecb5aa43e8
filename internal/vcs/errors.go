package vcs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnimplemented is returned by Unimplemented placeholder operations that a
// concrete backend has not overridden.
var ErrUnimplemented = errors.New("operation not implemented by this VCS backend")

// ExitError reports a command that started but exited with a nonzero status.
// Callers that expect a nonzero exit (see Git.DefaultBranch) match it with
// errors.As; everyone else propagates it unchanged.
type ExitError struct {
	Cmd    string
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s exited with status %d", e.Cmd, strings.Join(e.Args, " "), e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// SpawnError reports a command that could not be started, or was killed for
// exceeding its timeout. Timeout is zero for non-timeout spawn failures.
type SpawnError struct {
	Cmd     string
	Args    []string
	Stderr  string
	Timeout time.Duration
	Err     error
}

func (e *SpawnError) Error() string {
	var msg string
	if e.Timeout > 0 {
		msg = fmt.Sprintf("%s %s timed out after %s", e.Cmd, strings.Join(e.Args, " "), e.Timeout)
	} else {
		msg = fmt.Sprintf("failed to run %s %s: %v", e.Cmd, strings.Join(e.Args, " "), e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *SpawnError) Unwrap() error { return e.Err }
