package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/favorites"
	"github.com/jonathan/issue-scout/internal/observability"
	"github.com/jonathan/issue-scout/internal/types"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage your saved issues",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved issues, newest first",
	RunE:  runFavoritesList,
}

var favoritesShowCmd = &cobra.Command{
	Use:   "show owner/repo#number",
	Short: "Show one saved issue in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesShow,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add owner/repo#number",
	Short: "Save an issue to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var (
	favoritesDataDir  string
	favoritesStatus   string
	favoritesTag      string
	favoritesAddTitle string
	favoritesAddURL   string
	favoritesAddNotes string
	favoritesAddTags  []string
)

func init() {
	favoritesCmd.PersistentFlags().StringVar(&favoritesDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	favoritesListCmd.Flags().StringVar(&favoritesStatus, "status", "", "Filter by status: saved, in_progress, completed, or abandoned")
	favoritesListCmd.Flags().StringVar(&favoritesTag, "tag", "", "Filter by tag")

	favoritesAddCmd.Flags().StringVar(&favoritesAddTitle, "title", "", "Issue title")
	favoritesAddCmd.Flags().StringVar(&favoritesAddURL, "url", "", "Issue URL")
	favoritesAddCmd.Flags().StringVar(&favoritesAddNotes, "notes", "", "Personal notes")
	favoritesAddCmd.Flags().StringSliceVar(&favoritesAddTags, "tags", nil, "Comma-separated tags")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesShowCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func openFavorites() (*favorites.Manager, error) {
	mgr, err := favorites.NewManager(resolveDataDir(favoritesDataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return mgr, nil
}

func runFavoritesList(_ *cobra.Command, _ []string) error {
	mgr, err := openFavorites()
	if err != nil {
		return err
	}

	var favs []*favorites.Favorite
	switch {
	case favoritesStatus != "":
		status := favorites.Status(favoritesStatus)
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", favoritesStatus)
		}
		favs = mgr.ListByStatus(status)
	case favoritesTag != "":
		favs = mgr.ListByTag(favoritesTag)
	default:
		favs = mgr.ListAll()
	}

	observability.NewPrinter(os.Stdout).PrintFavorites(favs)
	return nil
}

func runFavoritesShow(_ *cobra.Command, args []string) error {
	ref, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	mgr, err := openFavorites()
	if err != nil {
		return err
	}

	fav, err := mgr.Get(ref)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintFavoriteDetail(fav)
	return nil
}

func runFavoritesAdd(_ *cobra.Command, args []string) error {
	ref, err := parseIssueRef(args[0])
	if err != nil {
		return err
	}

	mgr, err := openFavorites()
	if err != nil {
		return err
	}
	if mgr.IsFavorite(ref) {
		return fmt.Errorf("%s is already a favorite", ref)
	}

	issue := &types.IssueRecord{
		RepoFullName: ref.RepoFullName,
		Number:       ref.Number,
		Title:        favoritesAddTitle,
		URL:          favoritesAddURL,
	}
	if issue.URL == "" {
		issue.URL = fmt.Sprintf("https://github.com/%s/issues/%d", ref.RepoFullName, ref.Number)
	}

	fav, err := mgr.Add(issue, nil, favoritesAddNotes, favoritesAddTags)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	fmt.Printf("Saved %s to favorites.\n", fav.IssueRef)
	return nil
}
