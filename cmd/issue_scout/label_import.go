package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelImportCmd = &cobra.Command{
	Use:   "label-import owner/repo",
	Short: "Copy a builtin mapping into an editable user mapping",
	Long:  "Copies a repository's builtin label mapping into your customizations. The copy is independent: later updates to the builtin table do not affect it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelImport,
}

var labelImportDataDir string

func init() {
	labelImportCmd.Flags().StringVar(&labelImportDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelImportCmd)
}

func runLabelImport(_ *cobra.Command, args []string) error {
	repo := args[0]

	mgr, err := openLabels(labelImportDataDir)
	if err != nil {
		return err
	}

	if err := mgr.ImportBuiltin(repo); err != nil {
		return describeLabelErr(err, repo)
	}
	fmt.Printf("Imported builtin mapping for %s into your customizations.\n", repo)
	return nil
}
