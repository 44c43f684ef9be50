// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/issue-scout/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Default search preferences
	Topic      string `json:"topic,omitempty"`       // Default topic or domain to search
	Language   string `json:"language,omitempty"`    // Default programming language filter
	Skill      string `json:"skill,omitempty"`       // Default skill level (beginner/intermediate/advanced)
	TimeBudget string `json:"time_budget,omitempty"` // Default time budget (quick_win/half_day/full_day/weekend/deep_dive)

	// Paths
	DataDir   string `json:"data_dir,omitempty"`   // Directory for favorites, history, and label overlays
	CachePath string `json:"cache_path,omitempty"` // Path to the sqlite cache file

	// Credentials
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	GithubToken string `json:"github_token,omitempty"` // GitHub personal access token

	// Limits
	MaxResults  int `json:"max_results,omitempty"` // Maximum issues fetched per search
	Limit       int `json:"limit,omitempty"`       // Maximum ranked results presented
	Concurrency int `json:"concurrency,omitempty"` // Parallel issue analyses

	// Behavior
	ModelTier string `json:"model_tier,omitempty"` // Model tier for analysis (lite/standard/advanced)
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Skill != "" && !types.SkillLevel(c.Skill).Valid() {
		return fmt.Errorf("config error: 'skill' must be one of beginner, intermediate, advanced")
	}
	if c.TimeBudget != "" && !types.TimeBudget(c.TimeBudget).Valid() {
		return fmt.Errorf("config error: 'time_budget' must be one of quick_win, half_day, full_day, weekend, deep_dive")
	}

	// Validate numeric ranges
	if c.MaxResults < 0 {
		return fmt.Errorf("config error: 'max_results' must be non-negative")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	// Validate the data directory's parent exists (if specified)
	if c.DataDir != "" {
		parent := filepath.Dir(c.DataDir)
		if _, err := os.Stat(parent); os.IsNotExist(err) {
			return fmt.Errorf("config error: data_dir parent not found: %s", parent)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Topic == "" {
		result.Topic = defaults.Topic
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Skill == "" {
		result.Skill = defaults.Skill
	}
	if result.TimeBudget == "" {
		result.TimeBudget = defaults.TimeBudget
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GithubToken == "" {
		result.GithubToken = defaults.GithubToken
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}

	// Int fields: use default if zero
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
