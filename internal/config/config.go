// Package config loads and validates the routelens configuration stored at
// .routelens/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigVersion is the supported configuration schema version.
const ConfigVersion = 1

// Config represents the complete routelens configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Surfaces       SurfacesConfig       `json:"surfaces" mapstructure:"surfaces"`
	DependencyScan DependencyScanConfig `json:"dependencyScan" mapstructure:"dependencyScan"`
	Scenarios      ScenariosConfig      `json:"scenarios" mapstructure:"scenarios"`
	Logging        LoggingConfig        `json:"logging" mapstructure:"logging"`
}

// SurfacesConfig describes where navigable surfaces live in the target repo
type SurfacesConfig struct {
	// Globs match page and API handler files relative to the repo root
	Globs []string `json:"globs" mapstructure:"globs"`
	// APIGlobs is the sub-pattern identifying API handler files
	APIGlobs []string `json:"apiGlobs" mapstructure:"apiGlobs"`
	// Roots are directory prefixes stripped during route id derivation
	Roots []string `json:"roots" mapstructure:"roots"`
	// GraphPath is where the interaction graph document is persisted.
	// A .zst suffix enables compression.
	GraphPath string `json:"graphPath" mapstructure:"graphPath"`
}

// DependencyScanConfig controls the dependency graph build
type DependencyScanConfig struct {
	Includes []string `json:"includes" mapstructure:"includes"`
	Excludes []string `json:"excludes" mapstructure:"excludes"`
	MaxDepth int      `json:"maxDepth" mapstructure:"maxDepth"` // 0 = unlimited
}

// ScenariosConfig controls scenario generation
type ScenariosConfig struct {
	APIPrefix   string `json:"apiPrefix" mapstructure:"apiPrefix"`
	DefaultTier string `json:"defaultTier" mapstructure:"defaultTier"`
	// TierPolicyPath points at an optional TOML file mapping route prefixes
	// to assertion tiers
	TierPolicyPath string `json:"tierPolicyPath" mapstructure:"tierPolicyPath"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  ConfigVersion,
		RepoRoot: ".",
		Surfaces: SurfacesConfig{
			Globs: []string{
				"app/**/page.{tsx,jsx,ts,js}",
				"app/**/route.{ts,js}",
				"src/app/**/page.{tsx,jsx,ts,js}",
				"src/app/**/route.{ts,js}",
				"pages/**/*.{tsx,jsx,ts,js}",
				"src/pages/**/*.{tsx,jsx,ts,js}",
			},
			APIGlobs: []string{
				"**/route.{ts,js}",
				"**/api/**/*.{ts,js}",
			},
			Roots:     []string{"src/app", "src/pages", "app", "pages"},
			GraphPath: ".routelens/interaction-graph.json",
		},
		DependencyScan: DependencyScanConfig{
			Includes: []string{"**/*.{ts,tsx,js,jsx,mjs,cjs}"},
			Excludes: []string{
				"node_modules",
				".next",
				"dist",
				"build",
				".routelens",
				"**/*.test.*",
				"**/*.spec.*",
				"**/__tests__/**",
			},
			MaxDepth: 0,
		},
		Scenarios: ScenariosConfig{
			APIPrefix:      "/api",
			DefaultTier:    "L1",
			TierPolicyPath: ".routelens/tiers.toml",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .routelens/config.json, falling back to
// defaults when no file exists.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", ConfigVersion)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".routelens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RepoRoot = repoRoot
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.RepoRoot == "." || cfg.RepoRoot == "" {
		cfg.RepoRoot = repoRoot
	}

	return cfg, nil
}

// Exists reports whether a config file is present under the repo root.
func Exists(repoRoot string) bool {
	_, err := os.Stat(filepath.Join(repoRoot, ".routelens", "config.json"))
	return err == nil
}

// Save writes the configuration to .routelens/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".routelens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != ConfigVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if len(c.Surfaces.Globs) == 0 {
		return &ConfigError{Field: "surfaces.globs", Message: "at least one surface glob is required"}
	}
	if c.Surfaces.GraphPath == "" {
		return &ConfigError{Field: "surfaces.graphPath", Message: "graph path must not be empty"}
	}
	if c.DependencyScan.MaxDepth < 0 {
		return &ConfigError{Field: "dependencyScan.maxDepth", Message: "maxDepth must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
