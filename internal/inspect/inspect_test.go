package inspect

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/taneba/rome/internal/config"
	"github.com/taneba/rome/internal/errs"
	"github.com/taneba/rome/internal/vcs"
)

// mockRunner returns canned command output for testing.
type mockRunner struct {
	result vcs.Result
	err    error
	calls  [][]string
}

func (m *mockRunner) Run(dir string, name string, args ...string) (vcs.Result, error) {
	call := append([]string{name}, args...)
	m.calls = append(m.calls, call)
	if m.err != nil {
		return vcs.Result{}, m.err
	}
	return m.result, nil
}

// routingRunner dispatches on the git subcommand so a single service call
// can exercise show-ref, status and diff together.
type routingRunner struct {
	byVerb map[string]vcs.Result
	errs   map[string]error
}

func (r *routingRunner) Run(dir string, name string, args ...string) (vcs.Result, error) {
	verb := ""
	if len(args) > 0 {
		verb = args[0]
	}
	if err, ok := r.errs[verb]; ok {
		return vcs.Result{}, err
	}
	return r.byVerb[verb], nil
}

func newTestService(t *testing.T, runner vcs.Runner) (*Service, *bytes.Buffer) {
	t.Helper()
	cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
	var buf bytes.Buffer
	svc := &Service{
		Config: cfg,
		VCS:    &vcs.Git{Root: "/project", Runner: runner},
		Out:    &buf,
	}
	return svc, &buf
}

func TestStatusListsFiles(t *testing.T) {
	mock := &mockRunner{result: vcs.Result{Stdout: "M  a.go\n?? b.go\n"}}
	svc, buf := newTestService(t, mock)

	if err := svc.Status("/project"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.go") || !strings.Contains(out, "b.go") {
		t.Fatalf("expected both files in output, got %q", out)
	}
}

func TestStatusColorsByMarker(t *testing.T) {
	// SprintFunc consults color.NoColor at call time, so forcing it off
	// here makes the escape codes observable in the buffer.
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })

	mock := &mockRunner{result: vcs.Result{Stdout: "M  changed.go\nA  staged.go\n?? fresh.go\n"}}
	svc, buf := newTestService(t, mock)

	if err := svc.Status("/project"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		file string
		code string
	}{
		{"changed.go", "\x1b[31m"}, // modified: red
		{"staged.go", "\x1b[32m"},  // added: green
		{"fresh.go", "\x1b[34m"},   // untracked: blue
	}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		for _, tt := range tests {
			if strings.Contains(line, tt.file) && !strings.Contains(line, tt.code) {
				t.Errorf("expected %s to carry escape %q, got %q", tt.file, tt.code, line)
			}
		}
	}
	for _, tt := range tests {
		if !strings.Contains(buf.String(), tt.file) {
			t.Errorf("expected %s in output, got %q", tt.file, buf.String())
		}
	}
}

func TestStatusCleanTree(t *testing.T) {
	mock := &mockRunner{result: vcs.Result{Stdout: ""}}
	svc, buf := newTestService(t, mock)

	if err := svc.Status("/project"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No uncommitted changes") {
		t.Fatalf("expected clean message, got %q", buf.String())
	}
}

func TestStatusWrapsErrors(t *testing.T) {
	mock := &mockRunner{err: &vcs.ExitError{Cmd: "git", Code: 128, Stderr: "not a git repository"}}
	svc, _ := newTestService(t, mock)

	err := svc.Status("/project")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "could not determine uncommitted files") {
		t.Fatalf("expected wrapped message, got %v", err)
	}
	var exitErr *vcs.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError in chain, got %v", err)
	}
}

func TestChangedExplicitBranch(t *testing.T) {
	mock := &mockRunner{result: vcs.Result{Stdout: "M\tlib/x.go\n"}}
	svc, buf := newTestService(t, mock)

	if err := svc.Changed("/project", "develop"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "lib/x.go") {
		t.Fatalf("expected lib/x.go, got %q", buf.String())
	}
	expected := []string{"git", "diff", "--name-status", "develop"}
	for i, v := range expected {
		if mock.calls[0][i] != v {
			t.Fatalf("expected %s at position %d, got %s", v, i, mock.calls[0][i])
		}
	}
}

func TestChangedRejectsInvalidBranch(t *testing.T) {
	mock := &mockRunner{}
	svc, _ := newTestService(t, mock)

	err := svc.Changed("/project", "-v")
	if !errors.Is(err, errs.ErrInvalidBranch) {
		t.Fatalf("expected ErrInvalidBranch, got %v", err)
	}
	if len(mock.calls) != 0 {
		t.Fatal("no command should run for an invalid branch")
	}
}

func TestChangedDefaultsToBaseBranch(t *testing.T) {
	// show-ref fails with exit 1, so the base resolves to master.
	runner := &routingRunner{
		byVerb: map[string]vcs.Result{
			"diff": {Stdout: "A\tnew.go\n"},
		},
		errs: map[string]error{
			"show-ref": &vcs.ExitError{Cmd: "git", Code: 1},
		},
	}
	svc, buf := newTestService(t, runner)

	if err := svc.Changed("/project", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "new.go") {
		t.Fatalf("expected new.go, got %q", buf.String())
	}
}

func TestChangedUsesConfiguredBase(t *testing.T) {
	mock := &mockRunner{result: vcs.Result{Stdout: ""}}
	svc, buf := newTestService(t, mock)
	if err := svc.Config.SetBaseBranch("/project", "release"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Changed("/project", ""); err != nil {
		t.Fatal(err)
	}
	// The override must be used directly; no show-ref call happens.
	expected := []string{"git", "diff", "--name-status", "release"}
	for i, v := range expected {
		if mock.calls[0][i] != v {
			t.Fatalf("expected %s at position %d, got %s", v, i, mock.calls[0][i])
		}
	}
	if !strings.Contains(buf.String(), "release") {
		t.Fatalf("expected clean message naming the branch, got %q", buf.String())
	}
}

func TestBranchPrintsDefault(t *testing.T) {
	mock := &mockRunner{} // show-ref succeeds, so main exists
	svc, buf := newTestService(t, mock)

	if err := svc.Branch("/project"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "main" {
		t.Fatalf("expected main, got %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	runner := &routingRunner{
		byVerb: map[string]vcs.Result{
			"show-ref": {},
			"status":   {Stdout: "M  a.go\n"},
			"diff":     {Stdout: "M\ta.go\nA\tb.go\n"},
		},
	}
	svc, buf := newTestService(t, runner)

	if err := svc.Summary("/project"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "main") {
		t.Fatalf("expected base branch in summary, got %q", out)
	}
	if !strings.Contains(out, "2") || !strings.Contains(out, "1") {
		t.Fatalf("expected change counts in summary, got %q", out)
	}
}

func TestNoVCSDetectedIsNotAnError(t *testing.T) {
	dir := t.TempDir() // no .git entry
	cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
	var buf bytes.Buffer
	svc := &Service{Config: cfg, Out: &buf}

	if err := svc.Status(dir); err != nil {
		t.Fatalf("missing VCS must not be an error: %v", err)
	}
	if !strings.Contains(buf.String(), "No version control detected") {
		t.Fatalf("expected absence message, got %q", buf.String())
	}
}

func TestSetAndShowBase(t *testing.T) {
	mock := &mockRunner{}
	svc, buf := newTestService(t, mock)

	if err := svc.SetBase("/project", "develop"); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	if err := svc.ShowBase("/project"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stripToLast(buf.String())) != "develop" {
		t.Fatalf("expected develop, got %q", buf.String())
	}
}

func TestSetBaseRejectsInvalidBranch(t *testing.T) {
	mock := &mockRunner{}
	svc, _ := newTestService(t, mock)

	err := svc.SetBase("/project", "bad branch")
	if !errors.Is(err, errs.ErrInvalidBranch) {
		t.Fatalf("expected ErrInvalidBranch, got %v", err)
	}
}

func TestSetBaseEmptyClears(t *testing.T) {
	mock := &mockRunner{}
	svc, buf := newTestService(t, mock)

	svc.SetBase("/project", "develop")
	if err := svc.SetBase("/project", ""); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	if err := svc.ShowBase("/project"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No base branch override") {
		t.Fatalf("expected cleared override, got %q", buf.String())
	}
}

// stripToLast returns the last non-empty line of s, without ANSI codes
// interfering (plain output in tests since Out is a buffer).
func stripToLast(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
