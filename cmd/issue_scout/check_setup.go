package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/github"
	"github.com/jonathan/issue-scout/internal/logging"
)

var checkSetupCmd = &cobra.Command{
	Use:   "check-setup",
	Short: "Verify credentials, data directory, and GitHub API access",
	RunE:  runCheckSetup,
}

var checkSetupDataDir string

func init() {
	checkSetupCmd.Flags().StringVar(&checkSetupDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(checkSetupCmd)
}

func runCheckSetup(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	log := logging.New(false)
	defer func() { _ = log.Sync() }()

	problems := 0

	// Gemini API key
	if os.Getenv("GEMINI_API_KEY") != "" {
		fmt.Println("✓ GEMINI_API_KEY is set")
	} else {
		fmt.Println("✗ GEMINI_API_KEY is not set (required for issue analysis)")
		problems++
	}

	// GitHub token and live rate limit
	token := os.Getenv("GITHUB_TOKEN")
	if token != "" {
		fmt.Println("✓ GITHUB_TOKEN is set")
	} else {
		fmt.Println("- GITHUB_TOKEN is not set (searches run at the low anonymous rate limit)")
	}

	gh, err := github.NewClient(cache.NewDisabled(log), log, github.Options{Token: token})
	if err != nil {
		return fmt.Errorf("failed to create github client: %w", err)
	}
	if limit, err := gh.RateLimitStatus(ctx); err != nil {
		fmt.Printf("✗ GitHub API is unreachable: %v\n", err)
		problems++
	} else {
		fmt.Printf("✓ GitHub API reachable: %d/%d requests remaining (resets %s)\n",
			limit.Remaining, limit.Limit, limit.ResetAt.Format("15:04:05"))
	}

	// Data directory
	dataDir := resolveDataDir(checkSetupDataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Printf("✗ Data directory %s is not writable: %v\n", dataDir, err)
		problems++
	} else {
		probe := filepath.Join(dataDir, ".write-check")
		if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
			fmt.Printf("✗ Data directory %s is not writable: %v\n", dataDir, err)
			problems++
		} else {
			_ = os.Remove(probe)
			fmt.Printf("✓ Data directory %s is writable\n", dataDir)
		}
	}

	if problems > 0 {
		return fmt.Errorf("setup check found %d problem(s)", problems)
	}
	fmt.Println("Setup looks good.")
	return nil
}
