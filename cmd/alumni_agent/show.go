package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/observability"
)

var showConfigPath string

var showCmd = &cobra.Command{
	Use:   "show <name...>",
	Short: "Show the stored profile for a name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := resolveConfig(showConfigPath, config.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	profile, err := database.GetProfileByName(ctx, name)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile found for %q", name)
	}
	observability.NewPrinter(os.Stdout).PrintProfile(profile)
	return nil
}
