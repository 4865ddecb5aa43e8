package vcs

import (
	"errors"
	"strings"
)

// Git implements VCS by shelling out to the git binary.
type Git struct {
	// Root is the repository root. Fixed at construction; every command
	// runs with it as the working directory.
	Root   string
	Runner Runner
}

func (g *Git) Type() Type    { return TypeGit }
func (g *Git) Label() string { return "Git repository" }

// DefaultBranch returns "main" if refs/heads/main exists, otherwise "master".
// The reference check is the one place a nonzero exit is an expected outcome,
// so an ExitError is translated into the fallback instead of propagated.
// Spawn and timeout failures still propagate.
func (g *Git) DefaultBranch() (string, error) {
	_, err := g.Runner.Run(g.Root, "git", "show-ref", "--verify", "--quiet", "refs/heads/main")
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return "master", nil
		}
		return "", err
	}
	return "main", nil
}

// ModifiedFiles returns paths that differ between the working tree and the
// given branch.
func (g *Git) ModifiedFiles(branch string) ([]string, error) {
	res, err := g.Runner.Run(g.Root, "git", "diff", "--name-status", branch)
	if err != nil {
		return nil, err
	}
	return extractFileList(res.Stdout), nil
}

// UncommittedFiles returns paths with modified, added, or untracked changes.
func (g *Git) UncommittedFiles() ([]string, error) {
	entries, err := g.UncommittedEntries()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Path)
	}
	return files, nil
}

// UncommittedEntries is UncommittedFiles with the status marker kept, for
// callers that want to distinguish added, modified, and untracked paths.
func (g *Git) UncommittedEntries() ([]StatusEntry, error) {
	res, err := g.Runner.Run(g.Root, "git", "status", "--short")
	if err != nil {
		return nil, err
	}
	return extractStatusEntries(res.Stdout), nil
}

// StatusCode is the marker a matched line starts with.
type StatusCode string

const (
	StatusAdded     StatusCode = "A"
	StatusModified  StatusCode = "M"
	StatusUntracked StatusCode = "??"
)

// StatusEntry pairs a file path with its status marker.
type StatusEntry struct {
	Code StatusCode
	Path string
}

// statusCodes are the markers a line must start with to count as a file
// entry. "??" is checked before the single letters so "?" alone never
// matches.
var statusCodes = []StatusCode{StatusUntracked, StatusAdded, StatusModified}

// extractStatusEntries pulls file entries out of `git status --short` and
// `git diff --name-status` output. A line is trimmed, then must start with
// one of the status codes followed by at least one whitespace character; the
// remainder is the path, kept verbatim (it may contain spaces). Anything
// else — renames like "R100 old -> new", deletions, blank lines — is
// silently dropped. Output order is preserved and duplicates are kept.
func extractStatusEntries(output string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if entry, ok := matchStatusLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// extractFileList is extractStatusEntries reduced to the paths.
func extractFileList(output string) []string {
	var files []string
	for _, e := range extractStatusEntries(output) {
		files = append(files, e.Path)
	}
	return files
}

func matchStatusLine(line string) (StatusEntry, bool) {
	for _, code := range statusCodes {
		rest, found := strings.CutPrefix(line, string(code))
		if !found {
			continue
		}
		path := strings.TrimLeft(rest, " \t")
		if path == rest {
			// No whitespace after the code: "MM x" or a bare "M".
			continue
		}
		if path == "" {
			continue
		}
		return StatusEntry{Code: code, Path: path}, true
	}
	return StatusEntry{}, false
}
