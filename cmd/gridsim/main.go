// Package main is the entry point for the gridsim CLI
package main

import (
	"fmt"
	"os"

	"github.com/Zanice/2D-Game-Framework/internal/version"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seed         int64
	scenarioPath string
	mapsRoot     string
	redisAddr    string
)

var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "2D grid world simulation",
	Long: `gridsim runs a tick-based 2D grid world: cops, robbers and bystanders moving
through a tile map, fighting with knives, tazers, flashbangs and shields.`,
	SilenceUsage: true,
}

func init() {
	logger.Init()
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Master seed (0 - from GRIDSIM_SEED or random)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (empty - built-in room)")
	rootCmd.PersistentFlags().StringVar(&mapsRoot, "maps", ".", "Root directory for file maps")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for redis maps (default REDIS_ADDR)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
