package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routelens/internal/depgraph"
	"routelens/internal/paths"
	"routelens/internal/syntax"
)

var (
	depsFormat     string
	depsDepth      int
	depsDependents bool
)

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "Show dependencies or dependents of a file",
	Long: `Build the file-level dependency graph and list what a file depends on, or
with --dependents what depends on it.

Examples:
  routelens deps src/lib/data.ts                # What data.ts imports
  routelens deps src/lib/data.ts --dependents   # What imports data.ts
  routelens deps src/lib/data.ts --depth=1      # Direct edges only`,
	Args: cobra.ExactArgs(1),
	Run:  runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&depsFormat, "format", "human", "Output format (json, human, list)")
	depsCmd.Flags().IntVar(&depsDepth, "depth", 0, "Maximum traversal depth (0 = unlimited)")
	depsCmd.Flags().BoolVar(&depsDependents, "dependents", false, "List dependents instead of dependencies")

	rootCmd.AddCommand(depsCmd)
}

// DepsResponseCLI is the CLI response for a deps query.
type DepsResponseCLI struct {
	File      string   `json:"file"`
	Direction string   `json:"direction"`
	Files     []string `json:"files"`
	Warnings  []string `json:"warnings,omitempty"`
}

func runDeps(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(depsFormat, cfg)

	target, err := paths.Canonicalize(paths.JoinRepo(repoRoot, args[0]))
	if err != nil {
		exitErr(err)
	}

	builder := depgraph.NewBuilder(repoRoot, syntax.NewProvider(), logger)
	graph, warnings, err := builder.Build(newContext(), depgraph.BuildOptions{
		Includes: cfg.DependencyScan.Includes,
		Excludes: cfg.DependencyScan.Excludes,
	})
	if err != nil {
		exitErr(err)
	}
	if !graph.Files[target] {
		exitErr(fmt.Errorf("file %s is not in the dependency scan", args[0]))
	}

	direction := "dependencies"
	var files []string
	if depsDependents {
		direction = "dependents"
		files = graph.FindDependents(target, depsDepth)
	} else {
		files = graph.FindDependencies(target, depsDepth)
	}

	relative := make([]string, 0, len(files))
	for _, f := range files {
		rel, relErr := paths.RepoRelative(f, repoRoot)
		if relErr != nil {
			rel = f
		}
		relative = append(relative, rel)
	}

	resp := &DepsResponseCLI{
		File:      args[0],
		Direction: direction,
		Files:     relative,
		Warnings:  warnings,
	}

	switch OutputFormat(depsFormat) {
	case FormatList:
		for _, f := range relative {
			fmt.Println(f)
		}
	case FormatJSON:
		printJSON(resp)
	default:
		fmt.Printf("%s of %s: %d\n", direction, args[0], len(relative))
		for _, f := range relative {
			fmt.Printf("  %s\n", f)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
}
