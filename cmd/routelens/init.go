package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"routelens/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .routelens/config.json",
	Run:   runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()

	if config.Exists(repoRoot) && !initForce {
		exitErr(fmt.Errorf("config already exists, use --force to overwrite"))
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = repoRoot
	if err := cfg.Save(repoRoot); err != nil {
		exitErr(err)
	}
	fmt.Printf("Initialized routelens config in %s/.routelens\n", repoRoot)
}
