package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"routelens/internal/impact"
	"routelens/internal/paths"
	"routelens/internal/storage"
	"routelens/internal/syntax"
)

var (
	impactBase   string
	impactHead   string
	impactDepth  int
	impactFormat string
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Select the surfaces affected by a change set",
	Long: `Diff two revisions, intersect the changed files with the persisted
interaction graph through the dependency graph, and report which routes need
retesting.

Examples:
  routelens impact                      # Compare HEAD~1..HEAD
  routelens impact --base=main          # Compare main..HEAD
  routelens impact --format=list        # Route ids only (for CI)
  routelens impact --depth=2            # Limit transitive dependent depth`,
	Run: runImpact,
}

func init() {
	impactCmd.Flags().StringVar(&impactBase, "base", "HEAD~1", "Base revision for comparison")
	impactCmd.Flags().StringVar(&impactHead, "head", "HEAD", "Head revision for comparison")
	impactCmd.Flags().IntVar(&impactDepth, "depth", 0, "Maximum transitive dependent depth (0 = unlimited)")
	impactCmd.Flags().StringVar(&impactFormat, "format", "human", "Output format (json, human, list)")

	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(impactFormat, cfg)

	analyzer := impact.NewAnalyzer(repoRoot, syntax.NewProvider(), logger)
	result, err := analyzer.Analyze(newContext(), impact.Options{
		BaseRev:   impactBase,
		HeadRev:   impactHead,
		GraphPath: paths.JoinRepo(repoRoot, cfg.Surfaces.GraphPath),
		Includes:  cfg.DependencyScan.Includes,
		Excludes:  cfg.DependencyScan.Excludes,
		MaxDepth:  impactDepth,
	})
	if err != nil {
		exitErr(err)
	}

	recordRun(repoRoot, logger, storage.Run{
		Kind:       storage.RunKindImpact,
		BaseRev:    result.BaseRev,
		HeadRev:    result.HeadRev,
		Routes:     len(result.SelectedRoutes),
		Warnings:   len(result.Warnings),
		DurationMS: time.Since(start).Milliseconds(),
	})

	switch OutputFormat(impactFormat) {
	case FormatList:
		for _, route := range result.SelectedRoutes {
			fmt.Println(route.ID)
		}
	case FormatJSON:
		printJSON(result)
	default:
		fmt.Printf("Changed files (%s..%s): %d\n", result.BaseRev, result.HeadRev, len(result.ChangedFiles))
		for _, f := range result.ChangedFiles {
			fmt.Printf("  %s\n", f)
		}
		fmt.Printf("Selected routes: %d\n", len(result.SelectedRoutes))
		for _, route := range result.SelectedRoutes {
			fmt.Printf("  %s  (%s, %s)\n", route.ID, route.File, route.Reason)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
}
