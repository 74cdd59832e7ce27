package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/alumni-research/internal/config"
	"github.com/jonathan/alumni-research/internal/observability"
)

var (
	statusConfigPath string
	statusListLimit  int
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id]",
	Short: "Show a collection task, or recent tasks with --list",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusConfigPath, "config", "", "Path to JSON config file")
	statusCmd.Flags().IntVar(&statusListLimit, "list", 0, "List the N most recent tasks instead")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusListLimit == 0 && len(args) != 1 {
		return fmt.Errorf("expected a task ID (or use --list N)")
	}

	cfg, err := resolveConfig(statusConfigPath, config.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	printer := observability.NewPrinter(os.Stdout)

	if statusListLimit > 0 {
		tasks, err := database.ListTasks(ctx, statusListLimit)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found")
			return nil
		}
		for i := range tasks {
			printer.PrintTask(&tasks[i])
		}
		return nil
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid task ID %q: %w", args[0], err)
	}

	task, err := database.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task %s not found", id)
	}
	printer.PrintTask(task)
	return nil
}
