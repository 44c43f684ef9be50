package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/issue-scout/internal/types"
)

func TestParseIssueRef_Valid(t *testing.T) {
	ref, err := parseIssueRef("rust-lang/rust#12345")
	require.NoError(t, err)

	assert.Equal(t, "rust-lang/rust", ref.RepoFullName)
	assert.Equal(t, 12345, ref.Number)
}

func TestParseIssueRef_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing number separator", "rust-lang/rust"},
		{"missing owner", "/rust#1"},
		{"missing repo", "rust-lang/#1"},
		{"not a repo path", "rust#1"},
		{"nested path", "a/b/c#1"},
		{"non-numeric number", "rust-lang/rust#abc"},
		{"zero number", "rust-lang/rust#0"},
		{"negative number", "rust-lang/rust#-4"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseIssueRef(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseSkillLevel(t *testing.T) {
	level, err := parseSkillLevel("  Advanced ")
	require.NoError(t, err)
	assert.Equal(t, types.SkillAdvanced, level)

	_, err = parseSkillLevel("expert")
	assert.Error(t, err)
}

func TestResolveDataDir_FlagWins(t *testing.T) {
	assert.Equal(t, "/tmp/custom", resolveDataDir("/tmp/custom"))
	assert.NotEmpty(t, resolveDataDir(""))
}
