package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/issue-scout/internal/pipeline"
	"github.com/jonathan/issue-scout/internal/types"
)

// parseIssueRef parses the canonical "owner/repo#number" form used across
// favorites and history commands.
func parseIssueRef(s string) (types.IssueRef, error) {
	repo, numStr, ok := strings.Cut(s, "#")
	if !ok {
		return types.IssueRef{}, fmt.Errorf("invalid issue reference %q (expected owner/repo#number)", s)
	}
	if parts := strings.Split(repo, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return types.IssueRef{}, fmt.Errorf("invalid repository in %q (expected owner/repo#number)", s)
	}
	number, err := strconv.Atoi(numStr)
	if err != nil || number <= 0 {
		return types.IssueRef{}, fmt.Errorf("invalid issue number in %q (expected owner/repo#number)", s)
	}
	return types.IssueRef{RepoFullName: repo, Number: number}, nil
}

// resolveDataDir returns the flag value or the per-user default.
func resolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return pipeline.DefaultDataDir()
}
