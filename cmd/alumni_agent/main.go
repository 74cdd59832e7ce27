// Package main provides the alumni_agent CLI for researching alumni
// profiles and querying the profile store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alumni_agent",
	Short: "Alumni research pipeline",
	Long: `alumni_agent researches alumni by name and answers questions about
the collected profiles.

The collect command runs names through web search, fact extraction and
identity verification, persisting profiles that pass the quality gate.
The query command turns a free-text question into a structured filter
and runs it against the profile store.`,
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
