package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/history"
	"github.com/jonathan/issue-scout/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or prune your viewing history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List viewed issues, most recent first",
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate history statistics",
	RunE:  runHistoryStats,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove old entries, keeping attempted and completed work",
	RunE:  runHistoryClear,
}

var (
	historyDataDir   string
	historyLimit     int
	historyStatus    string
	historyDays      int
	historyClearAll  bool
	historyClearDays int
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to list")
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status: viewed, interested, attempted, completed, abandoned, or skipped")
	historyListCmd.Flags().IntVar(&historyDays, "days", 0, "Only entries seen in the last N days")

	historyClearCmd.Flags().BoolVar(&historyClearAll, "all", false, "Remove every entry regardless of status")
	historyClearCmd.Flags().IntVar(&historyClearDays, "days", 30, "Remove entries not seen in the last N days")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Manager, error) {
	mgr, err := history.NewManager(resolveDataDir(historyDataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return mgr, nil
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	mgr, err := openHistory()
	if err != nil {
		return err
	}

	var entries []*history.Entry
	switch {
	case historyStatus != "":
		status := history.Status(historyStatus)
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", historyStatus)
		}
		entries = mgr.ListByStatus(status)
	case historyDays > 0:
		entries = mgr.ListRecent(historyDays)
	default:
		entries = mgr.ListAll(historyLimit)
	}

	observability.NewPrinter(os.Stdout).PrintHistory(entries)
	return nil
}

func runHistoryStats(_ *cobra.Command, _ []string) error {
	mgr, err := openHistory()
	if err != nil {
		return err
	}

	stats := mgr.GetStats()
	observability.NewPrinter(os.Stdout).PrintHistoryStats(&stats)
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	mgr, err := openHistory()
	if err != nil {
		return err
	}

	var removed int
	if historyClearAll {
		removed, err = mgr.ClearAll()
	} else {
		removed, err = mgr.ClearOld(historyClearDays)
	}
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Printf("Removed %d history entries.\n", removed)
	return nil
}
