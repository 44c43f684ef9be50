// Package export writes ranked results to JSON or Markdown report files.
// JSON reports are machine-readable and checked against the exported results
// schema; Markdown reports are formatted for humans.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/issue-scout/internal/schemas"
	"github.com/jonathan/issue-scout/internal/types"
)

// Format selects the report serialization.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// exportedResultsSchema is the schema path relative to the repo root.
const exportedResultsSchema = "schemas/exported_results.schema.json"

// Report is the exported document shape.
type Report struct {
	ReportID     string                `json:"report_id"`
	ExportedAt   time.Time             `json:"exported_at"`
	Preferences  types.UserPreferences `json:"preferences"`
	TotalResults int                   `json:"total_results"`
	Results      []Result              `json:"results"`
}

// Result is one ranked issue in the report.
type Result struct {
	Rank     int                  `json:"rank"`
	Issue    types.IssueRecord    `json:"issue"`
	Analysis types.AnalysisResult `json:"analysis"`
	Score    types.ScoreBreakdown `json:"score"`
}

// Exporter writes reports. The clock and ID source are injectable for tests.
type Exporter struct {
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// NewExporter creates an Exporter.
func NewExporter(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// DetectFormat maps a file extension to a format. Unknown extensions default
// to JSON, matching the original tool's behavior.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatJSON
	}
}

// Export writes the ranked results to path. An empty format is auto-detected
// from the extension.
func (e *Exporter) Export(ranked []types.RankedIssue, prefs *types.UserPreferences, path string, format Format) (*Report, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	if format != FormatJSON && format != FormatMarkdown {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	report := e.buildReport(ranked, prefs)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}

	switch format {
	case FormatJSON:
		if err := e.writeJSON(report, path); err != nil {
			return nil, err
		}
	case FormatMarkdown:
		if err := e.writeMarkdown(report, path); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (e *Exporter) buildReport(ranked []types.RankedIssue, prefs *types.UserPreferences) *Report {
	report := &Report{
		ReportID:     e.newID(),
		ExportedAt:   e.now().UTC(),
		TotalResults: len(ranked),
		Results:      make([]Result, 0, len(ranked)),
	}
	if prefs != nil {
		report.Preferences = *prefs
	}
	for i, r := range ranked {
		report.Results = append(report.Results, Result{
			Rank:     i + 1,
			Issue:    r.Issue,
			Analysis: r.Analysis,
			Score:    r.Score,
		})
	}
	return report
}

func (e *Exporter) writeJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	// Schema mismatch is a warning, not a failure: the file is already on
	// disk and still useful.
	if schemaPath := schemas.ResolveSchemaPath(exportedResultsSchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			e.log.Warn("exported report does not match schema",
				zap.String("path", path),
				zap.Error(err))
		}
	}
	return nil
}

func (e *Exporter) writeMarkdown(report *Report, path string) error {
	var sb strings.Builder

	sb.WriteString("# Issue Scout Results\n\n")
	fmt.Fprintf(&sb, "**Exported:** %s\n", report.ExportedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "**Report ID:** %s\n", report.ReportID)
	fmt.Fprintf(&sb, "**Topic:** %s | **Language:** %s | **Skill:** %s | **Time:** %s\n\n",
		orAny(report.Preferences.Topic),
		orAny(report.Preferences.Language),
		string(report.Preferences.Skill),
		strings.ReplaceAll(string(report.Preferences.TimeBudget), "_", " "))
	sb.WriteString("---\n\n")

	for _, result := range report.Results {
		issue := result.Issue
		analysis := result.Analysis
		score := result.Score

		fmt.Fprintf(&sb, "## #%d %s — %s\n\n", result.Rank, issue.RepoFullName, issue.Title)
		sb.WriteString("| Field | Value |\n|-------|-------|\n")
		fmt.Fprintf(&sb, "| **Match Score** | %.0f%% (%s confidence) |\n", score.Overall*100, score.Confidence)
		fmt.Fprintf(&sb, "| **Difficulty** | %s |\n", analysis.Difficulty)
		fmt.Fprintf(&sb, "| **Estimated Time** | %s |\n", formatHours(analysis.EstimatedHours))
		fmt.Fprintf(&sb, "| **Clarity** | %.1f/1.0 |\n", analysis.ClarityScore)
		fmt.Fprintf(&sb, "| **Stars** | %d |\n", issue.RepoStars)
		fmt.Fprintf(&sb, "| **Labels** | %s |\n", orNone(strings.Join(issue.Labels, ", ")))
		fmt.Fprintf(&sb, "| **Link** | %s |\n\n", issue.URL)

		fmt.Fprintf(&sb, "**Summary:** %s\n\n", analysis.Summary)
		if len(analysis.TechnicalRequirements) > 0 {
			fmt.Fprintf(&sb, "**Technical Requirements:** %s\n\n", strings.Join(analysis.TechnicalRequirements, ", "))
		}
		if analysis.Recommendation != "" {
			fmt.Fprintf(&sb, "**Recommendation:** %s\n\n", analysis.Recommendation)
		}

		sb.WriteString("**Score Breakdown:**\n\n")
		sb.WriteString("| Component | Score |\n|-----------|-------|\n")
		fmt.Fprintf(&sb, "| difficulty match | %.0f%% |\n", score.DifficultyMatch*100)
		fmt.Fprintf(&sb, "| time match | %.0f%% |\n", score.TimeMatch*100)
		fmt.Fprintf(&sb, "| repo health | %.0f%% |\n", score.RepoHealth*100)
		fmt.Fprintf(&sb, "| issue clarity | %.0f%% |\n\n", score.IssueClarity*100)

		sb.WriteString("---\n\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func formatHours(r types.HourRange) string {
	return fmt.Sprintf("%.0f-%.0f hours", r.Low, r.High)
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
