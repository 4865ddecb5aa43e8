package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "config.json"))
}

func TestNewDefaultPath(t *testing.T) {
	c := New("")
	if !strings.HasSuffix(c.Path(), filepath.Join(".config", "rome", "config.json")) {
		t.Fatalf("unexpected default path: %s", c.Path())
	}
}

func TestReadMissingFile(t *testing.T) {
	c := newTestConfig(t)

	data, err := c.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty map, got %v", data)
	}
}

func TestReadInvalidJSON(t *testing.T) {
	c := newTestConfig(t)
	os.MkdirAll(filepath.Dir(c.Path()), 0o755)
	os.WriteFile(c.Path(), []byte("{not json"), 0o644)

	if _, err := c.Read(); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestWriteCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	c := New(filepath.Join(dir, "nested", "config.json"))

	if err := c.Write(map[string]any{"k": "v"}); err != nil {
		t.Fatal(err)
	}

	data, err := c.Read()
	if err != nil {
		t.Fatal(err)
	}
	if data["k"] != "v" {
		t.Fatalf("expected v, got %v", data["k"])
	}
}

func TestBaseBranchUnset(t *testing.T) {
	c := newTestConfig(t)

	if branch, ok := c.BaseBranch("/project"); ok {
		t.Fatalf("expected no override, got %q", branch)
	}
}

func TestSetAndGetBaseBranch(t *testing.T) {
	c := newTestConfig(t)

	if err := c.SetBaseBranch("/project", "develop"); err != nil {
		t.Fatal(err)
	}

	branch, ok := c.BaseBranch("/project")
	if !ok {
		t.Fatal("expected override to be set")
	}
	if branch != "develop" {
		t.Fatalf("expected develop, got %s", branch)
	}

	// Other projects are unaffected
	if _, ok := c.BaseBranch("/other"); ok {
		t.Fatal("expected no override for /other")
	}
}

func TestSetBaseBranchOverwrites(t *testing.T) {
	c := newTestConfig(t)

	c.SetBaseBranch("/project", "develop")
	c.SetBaseBranch("/project", "trunk")

	branch, _ := c.BaseBranch("/project")
	if branch != "trunk" {
		t.Fatalf("expected trunk, got %s", branch)
	}
}

func TestSetBaseBranchEmptyRemoves(t *testing.T) {
	c := newTestConfig(t)

	c.SetBaseBranch("/project", "develop")
	if err := c.SetBaseBranch("/project", ""); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.BaseBranch("/project"); ok {
		t.Fatal("expected override to be removed")
	}

	data, err := c.Read()
	if err != nil {
		t.Fatal(err)
	}
	if _, exists := data["base_branches"]; exists {
		t.Fatal("expected empty base_branches key to be dropped")
	}
}
