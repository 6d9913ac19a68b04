package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"routelens/internal/logging"
	"routelens/internal/storage"
)

var (
	runsFormat string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent extraction and impact runs",
	Run:   runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsFormat, "format", "human", "Output format (json, human)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(runsFormat, cfg)

	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		exitErr(err)
	}
	defer db.Close()

	runs, err := db.ListRuns(runsLimit)
	if err != nil {
		exitErr(err)
	}

	switch OutputFormat(runsFormat) {
	case FormatJSON:
		if runs == nil {
			runs = []storage.Run{}
		}
		printJSON(runs)
	default:
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return
		}
		for _, run := range runs {
			line := fmt.Sprintf("%s  %-8s routes=%d warnings=%d %dms",
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.Kind, run.Routes, run.Warnings, run.DurationMS)
			if run.Kind == storage.RunKindImpact {
				line += fmt.Sprintf("  %s..%s", run.BaseRev, run.HeadRev)
			}
			fmt.Println(line)
		}
	}
}

// recordRun persists a run row. History is an audit trail, so failures log a
// warning instead of failing the command.
func recordRun(repoRoot string, logger *logging.Logger, run storage.Run) {
	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		logger.Warn("Run history unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer db.Close()

	if _, err := db.RecordRun(run); err != nil {
		logger.Warn("Failed to record run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
