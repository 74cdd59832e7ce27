package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/interpret"
	"github.com/jonathan/alumni-research/internal/observability"
	"github.com/jonathan/alumni-research/internal/query"
)

var (
	queryConfigPath string
	queryShowFilter bool
	queryVerbose    bool
)

var queryCmd = &cobra.Command{
	Use:   "query <question...>",
	Short: "Answer a free-text question about collected profiles",
	Long: `Query interprets a natural-language question into a structured
filter and runs it against the profile store. An uninterpretable
question falls back to listing profiles.

Example:
  alumni_agent query "who works in mining in Perth?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryConfigPath, "config", "", "Path to JSON config file")
	queryCmd.Flags().BoolVar(&queryShowFilter, "show-filter", false, "Print the interpreted filter as JSON")
	queryCmd.Flags().BoolVarP(&queryVerbose, "verbose", "v", false, "Print detailed interpretation progress")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := resolveConfig(queryConfigPath, config.Config{Verbose: queryVerbose})
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required for query interpretation (set GEMINI_API_KEY)")
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer llmClient.Close()

	service := query.NewService(
		interpret.New(llmClient, cfg.Verbose),
		query.NewExecutor(database, cfg.Verbose),
		cfg.Verbose,
	)

	structured, profiles, err := service.Ask(ctx, question)
	if err != nil {
		return err
	}

	if queryShowFilter {
		filter, err := json.MarshalIndent(structured, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Filter: %s\n", filter)
	}

	if len(profiles) == 0 {
		fmt.Println("No matching profiles")
		return nil
	}

	fmt.Printf("%d matching profile(s)\n", len(profiles))
	printer := observability.NewPrinter(os.Stdout)
	for i := range profiles {
		printer.PrintProfile(&profiles[i])
	}
	return nil
}
