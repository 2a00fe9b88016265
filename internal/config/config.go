// Package config provides configuration management for SpecSmith.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (SPECSMITH_*)
// 3. Project config (.specsmith/config.yaml in cwd)
// 4. Home config (~/.specsmith/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all SpecSmith configuration.
type Config struct {
	// Output controls the default output format (table, json, shell).
	Output string `yaml:"output" json:"output"`

	// SpecsDir is the feature-directory root, relative to the workspace
	// root (default: specs).
	SpecsDir string `yaml:"specs_dir" json:"specs_dir"`

	// TemplatesDir holds document templates overriding the embedded
	// defaults, relative to the workspace root (default: .specsmith/templates).
	TemplatesDir string `yaml:"templates_dir" json:"templates_dir"`

	// Verbose enables debug output.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Git settings
	Git GitConfig `yaml:"git" json:"git"`

	// Slug settings
	Slug SlugConfig `yaml:"slug" json:"slug"`
}

// GitConfig holds version-control collaborator settings. Git is optional;
// every operation shelling out to it degrades gracefully when absent.
type GitConfig struct {
	// Command is the executable used for all version-control calls.
	// Default: "git".
	Command string `yaml:"command" json:"command"`

	// TimeoutSeconds bounds every git invocation. Branch listing is
	// advisory, so a timed-out call contributes nothing instead of failing
	// the operation. Default: 3.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// SlugConfig holds slug-generation settings.
type SlugConfig struct {
	// MaxWords is the number of description tokens kept in a generated
	// slug. Default: 4.
	MaxWords int `yaml:"max_words" json:"max_words"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput       = "table"
	defaultSpecsDir     = "specs"
	defaultTemplatesDir = ".specsmith/templates"
	defaultGitCommand   = "git"
	defaultGitTimeout   = 3
	defaultSlugMaxWords = 4
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:       defaultOutput,
		SpecsDir:     defaultSpecsDir,
		TemplatesDir: defaultTemplatesDir,
		Verbose:      false,
		Git: GitConfig{
			Command:        defaultGitCommand,
			TimeoutSeconds: defaultGitTimeout,
		},
		Slug: SlugConfig{
			MaxWords: defaultSlugMaxWords,
		},
	}
}

// GitTimeout returns the bounded duration for git invocations.
func (c *Config) GitTimeout() time.Duration {
	secs := c.Git.TimeoutSeconds
	if secs <= 0 {
		secs = defaultGitTimeout
	}
	return time.Duration(secs) * time.Second
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	// Load home config
	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	// Load project config
	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	// Apply environment variables
	cfg = applyEnv(cfg)

	// Apply flag overrides
	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".specsmith", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("SPECSMITH_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".specsmith", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("SPECSMITH_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("SPECSMITH_SPECS_DIR"); v != "" {
		cfg.SpecsDir = v
	}
	if v := os.Getenv("SPECSMITH_TEMPLATES_DIR"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := os.Getenv("SPECSMITH_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("SPECSMITH_GIT_COMMAND"); v != "" {
		cfg.Git.Command = v
	}
	if v := os.Getenv("SPECSMITH_GIT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Git.TimeoutSeconds = secs
		}
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	mergeStr(&dst.SpecsDir, src.SpecsDir)
	mergeStr(&dst.TemplatesDir, src.TemplatesDir)
	if src.Verbose {
		dst.Verbose = true
	}

	mergeStr(&dst.Git.Command, src.Git.Command)
	mergeInt(&dst.Git.TimeoutSeconds, src.Git.TimeoutSeconds)
	mergeInt(&dst.Slug.MaxWords, src.Slug.MaxWords)

	return dst
}

// Validate checks config values and returns a descriptive error for the
// first invalid field found.
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json", "shell":
	default:
		return &InvalidValueError{Field: "output", Value: c.Output, Allowed: "table, json, shell"}
	}
	if strings.ContainsAny(c.SpecsDir, "\x00") || c.SpecsDir == "" {
		return &InvalidValueError{Field: "specs_dir", Value: c.SpecsDir, Allowed: "non-empty relative path"}
	}
	return nil
}

// InvalidValueError reports a config field set to an unsupported value.
type InvalidValueError struct {
	Field   string
	Value   string
	Allowed string
}

func (e *InvalidValueError) Error() string {
	return "invalid config value for " + e.Field + ": " + strconv.Quote(e.Value) + " (allowed: " + e.Allowed + ")"
}
