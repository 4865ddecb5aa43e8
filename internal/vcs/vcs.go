// Package vcs answers three questions about a working copy: what is the
// repository's default branch, which files differ from a given branch, and
// which files are uncommitted. It is a thin wrapper that spawns the VCS
// binary and parses its line-oriented output; everything else (diffing,
// merging, credentials) stays with the external tool.
package vcs

import (
	"os"
	"path/filepath"
)

// Type represents a VCS type.
type Type string

const TypeGit Type = "git"

// VCS defines the read-only queries the host tool needs. Every call is an
// independent, idempotent subprocess invocation; no state is shared or cached
// between calls.
type VCS interface {
	Type() Type
	Label() string

	// DefaultBranch returns the repository's primary branch name.
	DefaultBranch() (string, error)

	// ModifiedFiles returns paths that differ between the working tree and
	// the given branch, in tool output order, not deduplicated.
	ModifiedFiles(branch string) ([]string, error)

	// UncommittedFiles returns paths with uncommitted changes (modified,
	// added, or untracked).
	UncommittedFiles() ([]string, error)
}

// Detect returns a VCS client for the given directory, or ok=false when no
// supported VCS is present. Absence is a normal outcome, not an error:
// callers are expected to degrade gracefully.
func Detect(root string) (VCS, bool) {
	// .git can be a directory (normal repo) or a file (worktree)
	if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
		return &Git{Root: root, Runner: &ExecRunner{}}, true
	}
	return nil, false
}
