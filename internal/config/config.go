package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config manages the rome configuration stored at ~/.config/rome/config.json.
// The file holds per-project base branch overrides:
//
//	{"base_branches": {"/home/me/project": "develop"}}
type Config struct {
	path string
}

// New creates a Config. If configPath is empty, uses the default location.
func New(configPath string) *Config {
	if configPath == "" {
		home, _ := os.UserHomeDir()
		configPath = filepath.Join(home, ".config", "rome", "config.json")
	}
	return &Config{path: configPath}
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Read returns the config data as a map, or an empty map if the file doesn't exist.
func (c *Config) Read() (map[string]any, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Write persists the config data to disk, creating directories as needed.
func (c *Config) Write(data map[string]any) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0o644)
}

// BaseBranch returns the configured base branch for the given project path.
func (c *Config) BaseBranch(projectPath string) (string, bool) {
	data, err := c.Read()
	if err != nil {
		return "", false
	}

	branches, ok := data["base_branches"].(map[string]any)
	if !ok {
		return "", false
	}

	branch, ok := branches[projectPath].(string)
	if !ok || branch == "" {
		return "", false
	}
	return branch, true
}

// SetBaseBranch records a base branch override for the given project path.
// An empty branch removes the override; if no overrides remain, the
// base_branches key is dropped.
func (c *Config) SetBaseBranch(projectPath, branch string) error {
	data, err := c.Read()
	if err != nil {
		return err
	}

	branches, ok := data["base_branches"].(map[string]any)
	if !ok {
		branches = map[string]any{}
		data["base_branches"] = branches
	}

	if branch == "" {
		delete(branches, projectPath)
		if len(branches) == 0 {
			delete(data, "base_branches")
		}
	} else {
		branches[projectPath] = branch
	}

	return c.Write(data)
}
