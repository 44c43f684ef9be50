package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/issue-scout/internal/types"
)

func newTestExporter() *Exporter {
	e := NewExporter(zap.NewNop())
	e.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	e.newID = func() string { return "00000000-0000-0000-0000-000000000001" }
	return e
}

func testPrefs() *types.UserPreferences {
	return &types.UserPreferences{
		Topic:      "web",
		Language:   "go",
		Skill:      types.SkillBeginner,
		TimeBudget: types.TimeHalfDay,
	}
}

func testRanked() []types.RankedIssue {
	return []types.RankedIssue{
		{
			Issue: types.IssueRecord{
				RepoFullName: "acme/tool",
				Number:       101,
				Title:        "Add retry to HTTP fetcher",
				URL:          "https://github.com/acme/tool/issues/101",
				Labels:       []string{"good first issue"},
				RepoStars:    900,
			},
			Analysis: types.AnalysisResult{
				IssueRef:              types.IssueRef{RepoFullName: "acme/tool", Number: 101},
				Difficulty:            types.SkillBeginner,
				EstimatedHours:        types.HourRange{Low: 2, High: 4},
				ClarityScore:          0.8,
				TechnicalRequirements: []string{"go"},
				Summary:               "Wrap the fetch call in a bounded retry loop.",
				Recommendation:        "Good fit for a first contribution.",
			},
			Score: types.ScoreBreakdown{
				DifficultyMatch: 1.0,
				TimeMatch:       1.0,
				RepoHealth:      0.7,
				IssueClarity:    0.8,
				Overall:         0.93,
				Confidence:      types.ConfidenceHigh,
			},
		},
		{
			Issue: types.IssueRecord{
				RepoFullName: "acme/other",
				Number:       7,
				Title:        "Document the plugin API",
				URL:          "https://github.com/acme/other/issues/7",
			},
			Analysis: types.AnalysisResult{
				IssueRef:       types.IssueRef{RepoFullName: "acme/other", Number: 7},
				Difficulty:     types.SkillIntermediate,
				EstimatedHours: types.HourRange{Low: 4, High: 8},
				ClarityScore:   0.5,
				Summary:        "Write reference docs for the plugin hooks.",
			},
			Score: types.ScoreBreakdown{
				DifficultyMatch: 0.5,
				TimeMatch:       0.5,
				RepoHealth:      0.3,
				IssueClarity:    0.4,
				Overall:         0.45,
				Confidence:      types.ConfidenceMedium,
			},
		},
	}
}

func TestExport_JSONRoundtrip(t *testing.T) {
	e := newTestExporter()
	path := filepath.Join(t.TempDir(), "results.json")

	report, err := e.Export(testRanked(), testPrefs(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", report.ReportID)
	assert.Equal(t, 2, report.TotalResults)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, report.ReportID, loaded.ReportID)
	require.Len(t, loaded.Results, 2)
	assert.Equal(t, 1, loaded.Results[0].Rank)
	assert.Equal(t, 2, loaded.Results[1].Rank)
	assert.Equal(t, "acme/tool", loaded.Results[0].Issue.RepoFullName)
	assert.Equal(t, types.ConfidenceHigh, loaded.Results[0].Score.Confidence)
	assert.Equal(t, *testPrefs(), loaded.Preferences)
}

func TestExport_MarkdownContainsReportSections(t *testing.T) {
	e := newTestExporter()
	path := filepath.Join(t.TempDir(), "results.md")

	_, err := e.Export(testRanked(), testPrefs(), path, "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Issue Scout Results")
	assert.Contains(t, content, "## #1 acme/tool — Add retry to HTTP fetcher")
	assert.Contains(t, content, "## #2 acme/other — Document the plugin API")
	assert.Contains(t, content, "**Match Score** | 93% (high confidence)")
	assert.Contains(t, content, "2-4 hours")
	assert.Contains(t, content, "**Technical Requirements:** go")
	assert.Contains(t, content, "half day")
}

func TestExport_FormatDetection(t *testing.T) {
	assert.Equal(t, FormatMarkdown, DetectFormat("out.md"))
	assert.Equal(t, FormatMarkdown, DetectFormat("out.MARKDOWN"))
	assert.Equal(t, FormatJSON, DetectFormat("out.json"))
	assert.Equal(t, FormatJSON, DetectFormat("out.txt"))
}

func TestExport_ExplicitFormatOverridesExtension(t *testing.T) {
	e := newTestExporter()
	path := filepath.Join(t.TempDir(), "results.txt")

	_, err := e.Export(testRanked(), testPrefs(), path, FormatMarkdown)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Issue Scout Results")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	e := newTestExporter()
	_, err := e.Export(testRanked(), testPrefs(), "out.json", Format("xml"))
	assert.Error(t, err)
}

func TestExport_CreatesParentDirectories(t *testing.T) {
	e := newTestExporter()
	path := filepath.Join(t.TempDir(), "reports", "nested", "results.json")

	_, err := e.Export(nil, testPrefs(), path, "")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExport_EmptyResults(t *testing.T) {
	e := newTestExporter()
	path := filepath.Join(t.TempDir(), "results.json")

	report, err := e.Export(nil, testPrefs(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalResults)
	assert.Empty(t, report.Results)
}
