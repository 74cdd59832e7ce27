package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/observability"
	"github.com/jonathan/alumni-research/internal/types"
)

var (
	collectConfigPath string
	collectNamesFile  string
	collectEngine     string
	collectFetchPages bool
	collectUseBrowser bool
	collectWait       bool
	collectVerbose    bool
)

var collectCmd = &cobra.Command{
	Use:   "collect [names...]",
	Short: "Research names and persist verified profiles",
	Long: `Collect runs each name through the research pipeline: web search,
fact extraction and identity verification. Profiles that pass the
quality gate are persisted; the rest are recorded as rejected on the
task. Names are read from arguments or from --file (one per line).

By default the command waits for the batch to finish and prints the
task. With --no-wait it prints the task ID and returns immediately;
check progress later with 'alumni_agent status <id>'.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectConfigPath, "config", "", "Path to JSON config file")
	collectCmd.Flags().StringVar(&collectNamesFile, "file", "", "File with one name per line")
	collectCmd.Flags().StringVar(&collectEngine, "engine", "", "Search engine: google or duckduckgo")
	collectCmd.Flags().BoolVar(&collectFetchPages, "fetch-pages", false, "Fetch result pages for extra facts")
	collectCmd.Flags().BoolVar(&collectUseBrowser, "use-browser", false, "Retry thin pages with a headless browser")
	collectCmd.Flags().BoolVar(&collectWait, "wait", true, "Wait for the batch to finish")
	collectCmd.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Print detailed pipeline progress")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	names := append([]string{}, args...)
	if collectNamesFile != "" {
		fromFile, err := readNamesFile(collectNamesFile)
		if err != nil {
			return err
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return fmt.Errorf("no names given: pass names as arguments or use --file")
	}

	cfg, err := resolveConfig(collectConfigPath, config.Config{
		SearchEngine: collectEngine,
		FetchPages:   collectFetchPages,
		UseBrowser:   collectUseBrowser,
		Verbose:      collectVerbose,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	manager, cleanup, err := newManager(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	taskID, err := manager.Submit(ctx, names, types.MethodWebResearch)
	if err != nil {
		return err
	}
	fmt.Printf("Submitted task %s (%d names)\n", taskID, len(names))

	if !collectWait {
		return nil
	}

	manager.Wait()

	task, err := manager.Status(ctx, taskID)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintTask(task)
	return nil
}

// readNamesFile reads one name per line, skipping blanks and # comments.
func readNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}
	return names, nil
}
