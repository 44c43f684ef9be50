package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/labelmap"
)

var labelRemoveCmd = &cobra.Command{
	Use:   "label-remove owner/repo level label",
	Short: "Remove a label from a repository's mapping",
	Long:  "Removes a user-added label outright. Builtin labels cannot be deleted; they are suppressed for the repository instead, and label-add restores them.",
	Args:  cobra.ExactArgs(3),
	RunE:  runLabelRemove,
}

var labelRemoveDataDir string

func init() {
	labelRemoveCmd.Flags().StringVar(&labelRemoveDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelRemoveCmd)
}

func runLabelRemove(_ *cobra.Command, args []string) error {
	repo, levelArg, label := args[0], args[1], args[2]

	level, err := parseSkillLevel(levelArg)
	if err != nil {
		return err
	}

	mgr, err := openLabels(labelRemoveDataDir)
	if err != nil {
		return err
	}

	err = mgr.RemoveLabel(repo, level, label)
	if errors.Is(err, labelmap.ErrBuiltinLabel) {
		if err := mgr.ShadowLabel(repo, level, label); err != nil {
			return describeLabelErr(err, repo)
		}
		fmt.Printf("Suppressed builtin label %q for %s (label-add restores it).\n", label, repo)
		return nil
	}
	if err != nil {
		return describeLabelErr(err, repo)
	}
	fmt.Printf("Removed %q from %s %s.\n", label, repo, level)
	return nil
}
