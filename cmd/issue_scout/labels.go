package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/issue-scout/internal/labelmap"
	"github.com/jonathan/issue-scout/internal/types"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the difficulty label mappings",
	Long:  "Lists the builtin per-repository label mappings and your customizations. These mappings translate raw issue labels (like \"good first issue\" or \"E-hard\") into skill levels during ranking.",
	RunE:  runLabels,
}

var labelsDataDir string

func init() {
	labelsCmd.Flags().StringVar(&labelsDataDir, "data-dir", "", "Directory for favorites, history, and label overlays (default ~/.issue-scout)")

	rootCmd.AddCommand(labelsCmd)
}

func openLabels(dataDir string) (*labelmap.Manager, error) {
	mgr, err := labelmap.NewManager(resolveDataDir(dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load label mappings: %w", err)
	}
	return mgr, nil
}

func printMappings(title string, mappings []labelmap.Mapping) {
	if len(mappings) == 0 {
		return
	}
	fmt.Printf("%s\n%s\n", title, strings.Repeat("=", len(title)))
	lastRepo := ""
	for _, m := range mappings {
		if m.RepoFullName != lastRepo {
			fmt.Printf("\n%s", m.RepoFullName)
			if m.Notes != "" {
				fmt.Printf("  (%s)", m.Notes)
			}
			fmt.Println()
			lastRepo = m.RepoFullName
		}
		fmt.Printf("  %-12s %s\n", m.SkillLevel, strings.Join(m.Labels, ", "))
	}
	fmt.Println()
}

func runLabels(_ *cobra.Command, _ []string) error {
	mgr, err := openLabels(labelsDataDir)
	if err != nil {
		return err
	}

	printMappings("Builtin Mappings", labelmap.ListBuiltin())

	user := mgr.ListUser()
	if len(user) == 0 {
		fmt.Println("No user customizations. Use label-add to create one.")
		return nil
	}
	printMappings("Your Mappings", user)
	return nil
}

// parseSkillLevel validates the level argument shared by the label commands.
func parseSkillLevel(s string) (types.SkillLevel, error) {
	level := types.SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("invalid skill level %q (expected beginner, intermediate, or advanced)", s)
	}
	return level, nil
}

// describeLabelErr rewrites sentinel errors into actionable CLI messages.
func describeLabelErr(err error, repo string) error {
	switch {
	case errors.Is(err, labelmap.ErrBuiltinMapping):
		return fmt.Errorf("%s only has builtin data; use label-import first if you want an editable copy", repo)
	case errors.Is(err, labelmap.ErrUnknownRepo):
		return fmt.Errorf("no builtin mapping exists for %s", repo)
	default:
		return err
	}
}
