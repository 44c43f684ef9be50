package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/favorites"
)

var favoriteRemoveCmd = &cobra.Command{
	Use:   "favorite-remove owner/repo#number",
	Short: "Remove an issue from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteRemove,
}

var favoriteRemoveDataDir string

func init() {
	favoriteRemoveCmd.Flags().StringVar(&favoriteRemoveDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(favoriteRemoveCmd)
}

func runFavoriteRemove(_ *cobra.Command, args []string) error {
	ref, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	mgr, err := favorites.NewManager(resolveDataDir(favoriteRemoveDataDir))
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	if err := mgr.Remove(ref); err != nil {
		return err
	}
	fmt.Printf("Removed %s from favorites.\n", ref)
	return nil
}
