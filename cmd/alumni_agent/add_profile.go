package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/collect"
	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/observability"
	"github.com/jonathan/alumni-research/internal/types"
)

var (
	addProfileConfigPath string
	addProfileFile       string
)

var addProfileCmd = &cobra.Command{
	Use:   "add-profile",
	Short: "Add or update a profile from a JSON file, bypassing research",
	Long: `Add-profile reads a profile from a JSON file and upserts it directly.
The profile is validated but skips search and verification; it is
stamped as manually entered with full confidence unless the file
carries its own data sources.`,
	RunE: runAddProfile,
}

func init() {
	addProfileCmd.Flags().StringVar(&addProfileConfigPath, "config", "", "Path to JSON config file")
	addProfileCmd.Flags().StringVar(&addProfileFile, "file", "", "Path to the profile JSON file (required)")
	_ = addProfileCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(addProfileCmd)
}

func runAddProfile(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(addProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	cfg, err := resolveConfig(addProfileConfigPath, config.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	// Manual entry needs no researcher behind the manager.
	manager := collect.NewManager(database, database, nil, cfg.Verbose)
	saved, err := manager.AddManualProfile(ctx, &profile)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintProfile(saved)
	return nil
}
