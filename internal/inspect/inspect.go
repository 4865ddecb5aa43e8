// Package inspect orchestrates the vcs queries for the CLI: detect the
// repository, resolve the base branch, run the query, print the result.
package inspect

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/taneba/rome/internal/config"
	"github.com/taneba/rome/internal/errs"
	"github.com/taneba/rome/internal/ui"
	"github.com/taneba/rome/internal/vcs"
)

// validBranchRe rejects names that could be mistaken for options or that git
// itself would refuse. Slashes are allowed (feature/foo is a branch name).
var validBranchRe = regexp.MustCompile(`^[^\s~^:?*\[\\-][^\s~^:?*\[\\]*$`)

// Service runs the VCS queries and writes human output.
type Service struct {
	Config  *config.Config
	VCS     vcs.VCS // override for testing; nil means detect per call
	Out     io.Writer
	Verbose bool
}

func (s *Service) output() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Service) say(msg string) {
	fmt.Fprintln(s.output(), msg)
}

func (s *Service) sayStatus(status, msg string) {
	if s.Verbose {
		fmt.Fprintf(s.output(), "%12s  %s\n", status, msg)
	}
}

// detect returns the VCS client for dir, or ok=false when the directory is
// not under version control. Absence is reported to the user as a normal
// outcome, never as an error.
func (s *Service) detect(dir string) (vcs.VCS, bool) {
	if s.VCS != nil {
		return s.VCS, true
	}
	v, ok := vcs.Detect(dir)
	if !ok {
		s.say(ui.Yellow(fmt.Sprintf("No version control detected in %s.", ui.DisplayPath(dir))))
		return nil, false
	}
	s.sayStatus("repo", fmt.Sprintf("Detected %s", v.Label()))
	return v, true
}

// baseBranch resolves the diff baseline: a configured per-project override
// wins, otherwise the repository's default branch.
func (s *Service) baseBranch(dir string, v vcs.VCS) (string, error) {
	if branch, ok := s.Config.BaseBranch(dir); ok {
		s.sayStatus("base", fmt.Sprintf("Using configured base branch %q", branch))
		return branch, nil
	}
	branch, err := v.DefaultBranch()
	if err != nil {
		return "", fmt.Errorf("could not determine default branch: %w", err)
	}
	return branch, nil
}

// Branch prints the resolved base branch for dir.
func (s *Service) Branch(dir string) error {
	v, ok := s.detect(dir)
	if !ok {
		return nil
	}
	branch, err := s.baseBranch(dir, v)
	if err != nil {
		return err
	}
	s.say(branch)
	return nil
}

// Status prints the files with uncommitted changes in dir, colored by their
// status marker when the backend exposes one.
func (s *Service) Status(dir string) error {
	v, ok := s.detect(dir)
	if !ok {
		return nil
	}

	if g, ok := v.(*vcs.Git); ok {
		entries, err := g.UncommittedEntries()
		if err != nil {
			return fmt.Errorf("could not determine uncommitted files: %w", err)
		}
		if len(entries) == 0 {
			s.say(ui.Green("No uncommitted changes."))
			return nil
		}
		for _, e := range entries {
			s.say(statusColor(e.Code)(e.Path))
		}
		return nil
	}

	files, err := v.UncommittedFiles()
	if err != nil {
		return fmt.Errorf("could not determine uncommitted files: %w", err)
	}

	if len(files) == 0 {
		s.say(ui.Green("No uncommitted changes."))
		return nil
	}
	for _, f := range files {
		s.say(f)
	}
	return nil
}

func statusColor(code vcs.StatusCode) func(a ...interface{}) string {
	switch code {
	case vcs.StatusAdded:
		return ui.Green
	case vcs.StatusUntracked:
		return ui.Blue
	default:
		return ui.Red
	}
}

// Changed prints the files that differ from branch. An empty branch means
// the resolved base branch.
func (s *Service) Changed(dir, branch string) error {
	v, ok := s.detect(dir)
	if !ok {
		return nil
	}

	if branch == "" {
		var err error
		branch, err = s.baseBranch(dir, v)
		if err != nil {
			return err
		}
	} else if !validBranchRe.MatchString(branch) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidBranch, branch)
	}

	files, err := v.ModifiedFiles(branch)
	if err != nil {
		return fmt.Errorf("could not determine changed files: %w", err)
	}

	if len(files) == 0 {
		s.say(ui.Green(fmt.Sprintf("No changes against %s.", branch)))
		return nil
	}
	for _, f := range files {
		s.say(f)
	}
	return nil
}

// Summary prints the base branch and change counts for dir in a small table.
func (s *Service) Summary(dir string) error {
	v, ok := s.detect(dir)
	if !ok {
		return nil
	}

	branch, err := s.baseBranch(dir, v)
	if err != nil {
		return err
	}

	uncommitted, err := v.UncommittedFiles()
	if err != nil {
		return fmt.Errorf("could not determine uncommitted files: %w", err)
	}

	changed, err := v.ModifiedFiles(branch)
	if err != nil {
		return fmt.Errorf("could not determine changed files: %w", err)
	}

	rows := [][]string{
		{ui.Bold("Base branch"), branch},
		{ui.Bold("Changed files"), countCell(len(changed))},
		{ui.Bold("Uncommitted files"), countCell(len(uncommitted))},
	}
	s.say(ui.DisplayPath(dir))
	ui.PrintTable(s.output(), rows, 2)
	return nil
}

func countCell(n int) string {
	if n == 0 {
		return ui.Dim("none")
	}
	return strconv.Itoa(n)
}

// SetBase records branch as the base branch override for dir. An empty
// branch clears the override.
func (s *Service) SetBase(dir, branch string) error {
	if branch != "" && !validBranchRe.MatchString(branch) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidBranch, branch)
	}

	if err := s.Config.SetBaseBranch(dir, branch); err != nil {
		return err
	}

	if branch == "" {
		s.say(ui.Green(fmt.Sprintf("Base branch override cleared for %s.", ui.DisplayPath(dir))))
	} else {
		s.say(ui.Green(fmt.Sprintf("Base branch for %s set to '%s'.", ui.DisplayPath(dir), branch)))
	}
	return nil
}

// ShowBase prints the current base branch override for dir, if any.
func (s *Service) ShowBase(dir string) error {
	branch, ok := s.Config.BaseBranch(dir)
	if !ok {
		s.say(fmt.Sprintf("No base branch override for %s. The repository default is used.", ui.DisplayPath(dir)))
		return nil
	}
	s.say(branch)
	return nil
}
