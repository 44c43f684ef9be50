package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelAddCmd = &cobra.Command{
	Use:   "label-add owner/repo level label",
	Short: "Map a raw issue label to a skill level for one repository",
	Long:  "Adds a label to a repository's mapping so that issues carrying it resolve to the given skill level. Example: label-add rust-lang/rust advanced \"E-hard\"",
	Args:  cobra.ExactArgs(3),
	RunE:  runLabelAdd,
}

var labelAddDataDir string

func init() {
	labelAddCmd.Flags().StringVar(&labelAddDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelAddCmd)
}

func runLabelAdd(_ *cobra.Command, args []string) error {
	repo, levelArg, label := args[0], args[1], args[2]

	level, err := parseSkillLevel(levelArg)
	if err != nil {
		return err
	}

	mgr, err := openLabels(labelAddDataDir)
	if err != nil {
		return err
	}

	if err := mgr.AddLabel(repo, level, label); err != nil {
		return describeLabelErr(err, repo)
	}
	fmt.Printf("Mapped %q to %s for %s.\n", label, level, repo)
	return nil
}
