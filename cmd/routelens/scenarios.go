package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routelens/internal/impact"
	"routelens/internal/interaction"
	"routelens/internal/paths"
	"routelens/internal/scenario"
	"routelens/internal/syntax"
)

var (
	scenariosFormat   string
	scenariosAffected bool
	scenariosBase     string
	scenariosHead     string
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Generate test scenario descriptors from the interaction graph",
	Long: `Turn the persisted interaction graph into test scenario descriptors for an
external test generator, one per route, with the assertion tier chosen by the
tier policy.

Examples:
  routelens scenarios                   # All routes, YAML output
  routelens scenarios --format=json     # JSON output
  routelens scenarios --affected        # Only routes affected by HEAD~1..HEAD`,
	Run: runScenarios,
}

func init() {
	scenariosCmd.Flags().StringVar(&scenariosFormat, "format", "yaml", "Output format (yaml, json)")
	scenariosCmd.Flags().BoolVar(&scenariosAffected, "affected", false, "Restrict to routes affected by the change set")
	scenariosCmd.Flags().StringVar(&scenariosBase, "base", "HEAD~1", "Base revision when --affected is set")
	scenariosCmd.Flags().StringVar(&scenariosHead, "head", "HEAD", "Head revision when --affected is set")

	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(scenariosFormat, cfg)

	graphPath := paths.JoinRepo(repoRoot, cfg.Surfaces.GraphPath)
	graph, err := interaction.Load(graphPath)
	if err != nil {
		exitErr(err)
	}

	policy, err := scenario.LoadTierPolicy(paths.JoinRepo(repoRoot, cfg.Scenarios.TierPolicyPath))
	if err != nil {
		exitErr(err)
	}

	opts := scenario.Options{
		APIPrefix:   cfg.Scenarios.APIPrefix,
		DefaultTier: cfg.Scenarios.DefaultTier,
		Policy:      policy,
	}

	if scenariosAffected {
		analyzer := impact.NewAnalyzer(repoRoot, syntax.NewProvider(), logger)
		result, analyzeErr := analyzer.Analyze(newContext(), impact.Options{
			BaseRev:   scenariosBase,
			HeadRev:   scenariosHead,
			GraphPath: graphPath,
			Includes:  cfg.DependencyScan.Includes,
			Excludes:  cfg.DependencyScan.Excludes,
			MaxDepth:  cfg.DependencyScan.MaxDepth,
		})
		if analyzeErr != nil {
			exitErr(analyzeErr)
		}
		routeIDs := make([]string, 0, len(result.SelectedRoutes))
		for _, route := range result.SelectedRoutes {
			routeIDs = append(routeIDs, route.ID)
		}
		opts.RouteIDs = routeIDs
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	scenarios := scenario.Generate(graph, opts)

	var out []byte
	if OutputFormat(scenariosFormat) == FormatJSON {
		out, err = scenario.MarshalJSON(scenarios)
	} else {
		out, err = scenario.MarshalYAML(scenarios)
	}
	if err != nil {
		exitErr(err)
	}
	fmt.Print(string(out))
	if OutputFormat(scenariosFormat) == FormatJSON {
		fmt.Println()
	}
}
