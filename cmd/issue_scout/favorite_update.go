package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/favorites"
)

var favoriteUpdateCmd = &cobra.Command{
	Use:   "favorite-update owner/repo#number",
	Short: "Update a favorite's status, notes, or tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteUpdate,
}

var (
	favoriteUpdateDataDir   string
	favoriteUpdateStatus    string
	favoriteUpdateNotes     string
	favoriteUpdateAddTag    string
	favoriteUpdateRemoveTag string
)

func init() {
	favoriteUpdateCmd.Flags().StringVar(&favoriteUpdateDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")
	favoriteUpdateCmd.Flags().StringVar(&favoriteUpdateStatus, "status", "", "New status: saved, in_progress, completed, or abandoned")
	favoriteUpdateCmd.Flags().StringVar(&favoriteUpdateNotes, "notes", "", "Replace the notes")
	favoriteUpdateCmd.Flags().StringVar(&favoriteUpdateAddTag, "add-tag", "", "Add a tag")
	favoriteUpdateCmd.Flags().StringVar(&favoriteUpdateRemoveTag, "remove-tag", "", "Remove a tag")

	rootCmd.AddCommand(favoriteUpdateCmd)
}

func runFavoriteUpdate(cmd *cobra.Command, args []string) error {
	ref, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	mgr, err := favorites.NewManager(resolveDataDir(favoriteUpdateDataDir))
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	changed := false
	if favoriteUpdateStatus != "" {
		if err := mgr.UpdateStatus(ref, favorites.Status(favoriteUpdateStatus)); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("notes") {
		if err := mgr.UpdateNotes(ref, favoriteUpdateNotes); err != nil {
			return err
		}
		changed = true
	}
	if favoriteUpdateAddTag != "" {
		if err := mgr.AddTag(ref, favoriteUpdateAddTag); err != nil {
			return err
		}
		changed = true
	}
	if favoriteUpdateRemoveTag != "" {
		if err := mgr.RemoveTag(ref, favoriteUpdateRemoveTag); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass --status, --notes, --add-tag, or --remove-tag")
	}
	fmt.Printf("Updated %s.\n", ref)
	return nil
}
