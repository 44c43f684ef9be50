package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/favorites"
	"github.com/jonathan/issue-scout/internal/history"
	"github.com/jonathan/issue-scout/internal/types"
)

func sampleRanked() []types.RankedIssue {
	return []types.RankedIssue{
		{
			Issue: types.IssueRecord{
				RepoFullName: "acme/tool",
				Number:       42,
				Title:        "Fix flaky integration test",
				URL:          "https://github.com/acme/tool/issues/42",
				RepoStars:    900,
			},
			Analysis: types.AnalysisResult{
				Difficulty:            types.SkillIntermediate,
				EstimatedHours:        types.HourRange{Low: 2, High: 4},
				Summary:               "The integration suite fails intermittently under parallel runs.",
				TechnicalRequirements: []string{"go", "testing"},
			},
			Score: types.ScoreBreakdown{
				DifficultyMatch: 1.0,
				TimeMatch:       0.9,
				RepoHealth:      0.8,
				IssueClarity:    0.85,
				Overall:         0.91,
				Confidence:      types.ConfidenceHigh,
			},
		},
	}
}

func TestPrintPreferences(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPreferences(&types.UserPreferences{
		Topic:      "web development",
		Language:   "go",
		Skill:      types.SkillIntermediate,
		TimeBudget: types.TimeHalfDay,
	})
	output := buf.String()

	assert.Contains(t, output, "Search Profile")
	assert.Contains(t, output, "web development")
	assert.Contains(t, output, "intermediate")
	assert.Contains(t, output, "half day")
}

func TestPrintPreferences_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPreferences(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRankedIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedIssues(sampleRanked(), false)
	output := buf.String()

	assert.Contains(t, output, "Top 1 Matches")
	assert.Contains(t, output, "#1  acme/tool — Fix flaky integration test")
	assert.Contains(t, output, "91% (high confidence)")
	assert.Contains(t, output, "2-4 hours")
	assert.Contains(t, output, "Requires: go, testing")
	assert.NotContains(t, output, "Breakdown:")
}

func TestPrintRankedIssues_VerboseShowsBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedIssues(sampleRanked(), true)
	output := buf.String()

	assert.Contains(t, output, "Breakdown: difficulty 1.00, time 0.90, repo health 0.80, clarity 0.85")
}

func TestPrintRankedIssues_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedIssues(nil, false)

	assert.Contains(t, buf.String(), "No matching issues found")
}

func TestPrintRepoHealth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRepoHealth("acme/tool", &types.RepoHealth{
		Stars:                900,
		Forks:                120,
		OpenIssues:           45,
		DaysSinceUpdate:      12,
		HasContributingGuide: true,
		IsHealthy:            true,
	})
	output := buf.String()

	assert.Contains(t, output, "acme/tool")
	assert.Contains(t, output, "healthy")
	assert.Contains(t, output, "12 days ago")
	assert.Contains(t, output, "CONTRIBUTING.md:  yes")
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCacheStats(cache.Stats{
		Namespaces: map[cache.Namespace]cache.NamespaceStats{
			cache.NamespaceSearch:   {Hits: 3, Misses: 1, Entries: 2},
			cache.NamespaceAnalysis: {Hits: 5, Misses: 1, Entries: 6},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Cache Statistics")
	assert.Contains(t, output, "analysis:")
	assert.Contains(t, output, "search:")
	assert.Contains(t, output, "Hit rate:  80%")
}

func TestPrintFavorites(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFavorites([]*favorites.Favorite{
		{
			IssueRef:   types.IssueRef{RepoFullName: "acme/tool", Number: 42},
			Title:      "Fix flaky integration test",
			Status:     favorites.StatusSaved,
			SavedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			Difficulty: types.SkillIntermediate,
			Tags:       []string{"go", "testing"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Favorites (1)")
	assert.Contains(t, output, "acme/tool#42")
	assert.Contains(t, output, "status: saved | saved 2026-08-30")
	assert.Contains(t, output, "tags: go, testing")
}

func TestPrintFavorites_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFavorites(nil)

	assert.Contains(t, buf.String(), "No favorites saved yet")
}

func TestPrintHistoryStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHistoryStats(&history.Stats{
		Total:          10,
		RecentWeek:     3,
		RecentMonth:    8,
		CompletionRate: 0.5,
		ByStatus: map[history.Status]int{
			history.StatusViewed:    7,
			history.StatusCompleted: 3,
		},
		MostViewed: []*history.Entry{
			{
				IssueRef:  types.IssueRef{RepoFullName: "acme/tool", Number: 7},
				Title:     "Improve docs",
				ViewCount: 4,
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Total issues seen: 10")
	assert.Contains(t, output, "Completion rate:   50%")
	assert.Contains(t, output, "completed:")
	assert.Contains(t, output, "acme/tool#7 (4x)")
}
