package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelDeleteCmd = &cobra.Command{
	Use:   "label-delete owner/repo",
	Short: "Delete a repository's user mapping",
	Long:  "Deletes your customizations for a repository. Builtin mappings are untouched and take effect again afterwards.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelDelete,
}

var labelDeleteDataDir string

func init() {
	labelDeleteCmd.Flags().StringVar(&labelDeleteDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelDeleteCmd)
}

func runLabelDelete(_ *cobra.Command, args []string) error {
	repo := args[0]

	mgr, err := openLabels(labelDeleteDataDir)
	if err != nil {
		return err
	}

	if err := mgr.DeleteMapping(repo); err != nil {
		return describeLabelErr(err, repo)
	}
	fmt.Printf("Deleted your mapping for %s.\n", repo)
	return nil
}
