package main

import (
	"github.com/spf13/cobra"

	"routelens/internal/version"
)

var (
	// repoFlag overrides the repository root, defaulting to the working
	// directory.
	repoFlag string
)

var rootCmd = &cobra.Command{
	Use:   "routelens",
	Short: "routelens - change-impact test selection for web applications",
	Long: `routelens extracts an interaction graph of navigable surfaces (routes,
modals, actions) from a web application source tree, tracks file-level
dependencies, and selects the surfaces affected by a change set so test
generation can focus where it matters.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("routelens version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "",
		"Repository root (default: current directory)")
}
