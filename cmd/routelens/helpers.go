package main

import (
	"context"
	"fmt"
	"os"

	"routelens/internal/config"
	"routelens/internal/logging"
	"routelens/internal/paths"
)

// mustGetRepoRoot returns the canonical repository root or exits on error.
func mustGetRepoRoot() string {
	root := repoFlag
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		root = wd
	}

	canonical, err := paths.Canonicalize(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info, err := os.Stat(canonical); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: repository root %s is not a directory\n", canonical)
		os.Exit(1)
	}
	return canonical
}

// mustLoadConfig loads the repository config or exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger matching the output format, so human output
// stays readable and json output stays parseable.
func newLogger(format string, cfg *config.Config) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	level := logging.InfoLevel
	if cfg != nil {
		level = logging.ParseLevel(cfg.Logging.Level)
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
	})
}
