// Package config loads workplan configuration from a TOML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configDir  = ".workplan"
	configFile = "config.toml"
)

// Config holds tracker and publishing settings for a project.
type Config struct {
	GitHub GitHubConfig `toml:"github"`
	Notion NotionConfig `toml:"notion"`

	// Root is the project root directory the config was loaded from,
	// or the working directory when no config file exists.
	Root string `toml:"-"`
}

// GitHubConfig identifies the repository issues are created in.
type GitHubConfig struct {
	Token string `toml:"token"`
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
}

// NotionConfig identifies the workspace pages plans are published to.
type NotionConfig struct {
	Token        string `toml:"token"`
	ParentPageID string `toml:"parent_page_id"`
}

// Load reads the project config file, if any, and applies environment
// variable overrides. A missing config file is not an error; tokens are
// routinely supplied through the environment alone.
func Load() (*Config, error) {
	cfg := &Config{}

	root, path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root = wd
	}
	cfg.Root = root

	applyEnv(cfg)
	return cfg, nil
}

// findConfigFile walks up from the working directory looking for
// .workplan/config.toml. Returns the containing root and the file path,
// or empty strings if none exists.
func findConfigFile() (string, string) {
	dir, err := os.Getwd()
	if err != nil {
		return "", ""
	}

	for {
		path := filepath.Join(dir, configDir, configFile)
		if _, err := os.Stat(path); err == nil {
			return dir, path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// applyEnv overrides file values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("WORKPLAN_GITHUB_OWNER"); v != "" {
		cfg.GitHub.Owner = v
	}
	if v := os.Getenv("WORKPLAN_GITHUB_REPO"); v != "" {
		cfg.GitHub.Repo = v
	}
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv("WORKPLAN_NOTION_PARENT_PAGE"); v != "" {
		cfg.Notion.ParentPageID = v
	}
}

// RequireGitHub validates that the tracker settings are usable.
func (c *Config) RequireGitHub() error {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return fmt.Errorf("github owner and repo are required (set [github] in %s/%s or WORKPLAN_GITHUB_* env vars)", configDir, configFile)
	}
	if c.GitHub.Token == "" {
		return fmt.Errorf("github token is required (set GITHUB_TOKEN)")
	}
	return nil
}

// RequireNotion validates that the publishing settings are usable.
func (c *Config) RequireNotion() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("notion token is required (set NOTION_TOKEN)")
	}
	if c.Notion.ParentPageID == "" {
		return fmt.Errorf("notion parent page is required (set WORKPLAN_NOTION_PARENT_PAGE)")
	}
	return nil
}

// TokenStatus reports which credentials are present and whether their
// format looks plausible. Purely informational; nothing is rejected on
// format alone.
type TokenStatus struct {
	Present     bool
	FormatValid bool
}

// ValidateTokens checks the configured credentials.
func (c *Config) ValidateTokens() map[string]TokenStatus {
	status := make(map[string]TokenStatus, 2)

	status["github"] = TokenStatus{
		Present: c.GitHub.Token != "",
		FormatValid: strings.HasPrefix(c.GitHub.Token, "ghp_") ||
			strings.HasPrefix(c.GitHub.Token, "gho_"),
	}
	status["notion"] = TokenStatus{
		Present: c.Notion.Token != "",
		FormatValid: strings.HasPrefix(c.Notion.Token, "ntn_") ||
			strings.HasPrefix(c.Notion.Token, "secret_"),
	}

	return status
}
