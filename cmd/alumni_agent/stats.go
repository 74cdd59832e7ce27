package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/observability"
)

var statsConfigPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile store statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(statsConfigPath, config.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := database.GetStats(ctx)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintStats(stats)
	return nil
}
