package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/labelmap"
	"github.com/jonathan/issue-scout/internal/types"
)

var labelShowCmd = &cobra.Command{
	Use:   "label-show owner/repo",
	Short: "Show the effective label mapping for one repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelShow,
}

var labelShowDataDir string

func init() {
	labelShowCmd.Flags().StringVar(&labelShowDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelShowCmd)
}

func runLabelShow(_ *cobra.Command, args []string) error {
	repo := args[0]

	mgr, err := openLabels(labelShowDataDir)
	if err != nil {
		return err
	}

	effective := mgr.EffectiveMapping(repo)
	empty := true
	for _, labels := range effective {
		if len(labels) > 0 {
			empty = false
			break
		}
	}
	if empty {
		fmt.Printf("No mapping for %s; the global default labels apply.\n", repo)
		return nil
	}

	source := "builtin"
	switch {
	case mgr.HasUserMapping(repo) && labelmap.HasBuiltinMapping(repo):
		source = "builtin + your changes"
	case mgr.HasUserMapping(repo):
		source = "user-defined"
	}
	fmt.Printf("%s (%s)\n", repo, source)
	for _, level := range types.SkillLevels {
		if labels := effective[level]; len(labels) > 0 {
			fmt.Printf("  %-12s %s\n", level, strings.Join(labels, ", "))
		}
	}
	return nil
}
