// Package main provides the entry point for the issue-scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "issue_scout",
	Short: "Find open-source issues that match your skills and time",
	Long:  "issue-scout searches GitHub for open, unassigned issues, analyzes each one with an AI model, and ranks the results against your topic, language, skill level, and time budget.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
