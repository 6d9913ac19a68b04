package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"routelens/internal/interaction"
	"routelens/internal/paths"
	"routelens/internal/storage"
	"routelens/internal/syntax"
)

var (
	extractFormat string
	extractOutput string
	extractSalt   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the interaction graph from the source tree",
	Long: `Scan the configured surface files for routes, modals and actions, detect
navigation edges from literal patterns, and persist the interaction graph.

Examples:
  routelens extract                        # Write .routelens/interaction-graph.json
  routelens extract --output=graph.json.zst  # Compressed output
  routelens extract --format=json          # Machine-readable summary`,
	Run: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "human", "Output format (json, human)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "Graph output path (default: configured graph path)")
	extractCmd.Flags().StringVar(&extractSalt, "build-salt", "", "Build salt recorded in the graph (default: random)")

	rootCmd.AddCommand(extractCmd)
}

// ExtractResponseCLI is the CLI summary of an extraction.
type ExtractResponseCLI struct {
	GraphPath string            `json:"graphPath"`
	BuildSalt string            `json:"buildSalt"`
	Stats     interaction.Stats `json:"stats"`
	Warnings  []string          `json:"warnings,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(extractFormat, cfg)

	if !syntax.Available() {
		exitErr(fmt.Errorf("no syntax provider compiled in, rebuild with cgo enabled"))
	}

	extractor := interaction.NewExtractor(repoRoot, syntax.NewProvider(), logger)
	graph, warnings, err := extractor.Extract(newContext(), interaction.Options{
		SurfaceGlobs: cfg.Surfaces.Globs,
		APIGlobs:     cfg.Surfaces.APIGlobs,
		Roots:        cfg.Surfaces.Roots,
		BuildSalt:    extractSalt,
	})
	if err != nil {
		exitErr(err)
	}

	outputPath := extractOutput
	if outputPath == "" {
		outputPath = paths.JoinRepo(repoRoot, cfg.Surfaces.GraphPath)
	}
	if err := interaction.Save(graph, outputPath); err != nil {
		exitErr(err)
	}

	recordRun(repoRoot, logger, storage.Run{
		Kind:       storage.RunKindExtract,
		BuildSalt:  graph.BuildSalt,
		Routes:     graph.Stats.Routes,
		Nodes:      len(graph.Nodes),
		Edges:      len(graph.Edges),
		Warnings:   len(warnings),
		DurationMS: time.Since(start).Milliseconds(),
	})

	resp := &ExtractResponseCLI{
		GraphPath: outputPath,
		BuildSalt: graph.BuildSalt,
		Stats:     graph.Stats,
		Warnings:  warnings,
	}

	switch OutputFormat(extractFormat) {
	case FormatJSON:
		printJSON(resp)
	default:
		fmt.Printf("Interaction graph written to %s\n", resp.GraphPath)
		fmt.Printf("  routes: %d  modals: %d  actions: %d  navigations: %d\n",
			resp.Stats.Routes, resp.Stats.Modals, resp.Stats.Actions, resp.Stats.Navigations)
		for _, w := range resp.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}
}
