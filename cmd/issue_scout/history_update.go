package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/history"
)

var historyUpdateCmd = &cobra.Command{
	Use:   "history-update owner/repo#number",
	Short: "Set the status of a viewed issue",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryUpdate,
}

var (
	historyUpdateDataDir string
	historyUpdateStatus  string
)

func init() {
	historyUpdateCmd.Flags().StringVar(&historyUpdateDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")
	historyUpdateCmd.Flags().StringVar(&historyUpdateStatus, "status", "", "New status: viewed, interested, attempted, completed, abandoned, or skipped (required)")

	if err := historyUpdateCmd.MarkFlagRequired("status"); err != nil {
		panic(fmt.Sprintf("failed to mark status flag as required: %v", err))
	}

	rootCmd.AddCommand(historyUpdateCmd)
}

func runHistoryUpdate(_ *cobra.Command, args []string) error {
	ref, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	mgr, err := history.NewManager(resolveDataDir(historyUpdateDataDir))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if err := mgr.UpdateStatus(ref, history.Status(historyUpdateStatus)); err != nil {
		return err
	}
	fmt.Printf("Marked %s as %s.\n", ref, historyUpdateStatus)
	return nil
}
