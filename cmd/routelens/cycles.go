package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"routelens/internal/depgraph"
	"routelens/internal/paths"
	"routelens/internal/syntax"
)

var cyclesFormat string

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Report circular import chains",
	Long: `Build the file-level dependency graph and report every circular import
chain found in it.`,
	Run: runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "human", "Output format (json, human)")

	rootCmd.AddCommand(cyclesCmd)
}

// CyclesResponseCLI is the CLI response for a cycles report.
type CyclesResponseCLI struct {
	Cycles   [][]string `json:"cycles"`
	Warnings []string   `json:"warnings,omitempty"`
}

func runCycles(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cyclesFormat, cfg)

	builder := depgraph.NewBuilder(repoRoot, syntax.NewProvider(), logger)
	graph, warnings, err := builder.Build(newContext(), depgraph.BuildOptions{
		Includes: cfg.DependencyScan.Includes,
		Excludes: cfg.DependencyScan.Excludes,
	})
	if err != nil {
		exitErr(err)
	}

	cycles := graph.DetectCircularDependencies()
	relative := make([][]string, 0, len(cycles))
	for _, cycle := range cycles {
		relCycle := make([]string, 0, len(cycle))
		for _, f := range cycle {
			rel, relErr := paths.RepoRelative(f, repoRoot)
			if relErr != nil {
				rel = f
			}
			relCycle = append(relCycle, rel)
		}
		relative = append(relative, relCycle)
	}

	resp := &CyclesResponseCLI{Cycles: relative, Warnings: warnings}

	switch OutputFormat(cyclesFormat) {
	case FormatJSON:
		printJSON(resp)
	default:
		if len(relative) == 0 {
			fmt.Println("No circular imports found")
		}
		for i, cycle := range relative {
			fmt.Printf("cycle %d: %s\n", i+1, strings.Join(cycle, " -> "))
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
}
