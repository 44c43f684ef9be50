// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/favorites"
	"github.com/jonathan/issue-scout/internal/history"
	"github.com/jonathan/issue-scout/internal/types"
)

const (
	// maxSummaryChars truncates long summaries in list views
	maxSummaryChars = 120
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 20
)

// Printer handles formatted output for the CLI. Output is plain text;
// rendering stays readable when piped or redirected.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printHeader prints a section title with an underline.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printHeader(title string) {
	fmt.Fprintf(p.out, "%s\n%s\n", title, strings.Repeat("=", len(title)))
}

// PrintPreferences outputs the effective search profile before a run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPreferences(prefs *types.UserPreferences) {
	if prefs == nil {
		return
	}

	p.printHeader("Search Profile")
	fmt.Fprintf(p.out, "Topic:       %s\n", orAny(prefs.Topic))
	fmt.Fprintf(p.out, "Language:    %s\n", orAny(prefs.Language))
	fmt.Fprintf(p.out, "Skill:       %s\n", prefs.Skill)
	fmt.Fprintf(p.out, "Time budget: %s\n\n", budgetLabel(prefs.TimeBudget))
}

// PrintRankedIssues outputs the ranked results. Verbose mode adds the score
// breakdown per issue.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRankedIssues(ranked []types.RankedIssue, verbose bool) {
	if len(ranked) == 0 {
		fmt.Fprintln(p.out, "No matching issues found. Try a broader topic or a different skill level.")
		return
	}

	p.printHeader(fmt.Sprintf("Top %d Matches", len(ranked)))
	fmt.Fprintln(p.out)

	for i, r := range ranked {
		fmt.Fprintf(p.out, "#%d  %s — %s\n", i+1, r.Issue.RepoFullName, r.Issue.Title)
		fmt.Fprintf(p.out, "    %s\n", r.Issue.URL)
		fmt.Fprintf(p.out, "    Match: %.0f%% (%s confidence) | %s | %s | ★ %d\n",
			r.Score.Overall*100, r.Score.Confidence,
			r.Analysis.Difficulty, formatHours(r.Analysis.EstimatedHours), r.Issue.RepoStars)

		if summary := strings.TrimSpace(r.Analysis.Summary); summary != "" {
			fmt.Fprintf(p.out, "    %s\n", truncate(summary, maxSummaryChars))
		}
		if len(r.Analysis.TechnicalRequirements) > 0 {
			fmt.Fprintf(p.out, "    Requires: %s\n", strings.Join(r.Analysis.TechnicalRequirements, ", "))
		}

		if verbose {
			fmt.Fprintf(p.out, "    Breakdown: difficulty %.2f, time %.2f, repo health %.2f, clarity %.2f\n",
				r.Score.DifficultyMatch, r.Score.TimeMatch, r.Score.RepoHealth, r.Score.IssueClarity)
		}

		if i < len(ranked)-1 {
			fmt.Fprintln(p.out)
		}
	}
	fmt.Fprintln(p.out)
}

// PrintRepoHealth outputs repository health signals for one repo.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRepoHealth(repo string, health *types.RepoHealth) {
	if health == nil {
		return
	}

	p.printHeader(repo)
	status := "healthy"
	if !health.IsHealthy {
		status = "stale or low activity"
	}
	fmt.Fprintf(p.out, "Status:           %s\n", status)
	fmt.Fprintf(p.out, "Stars:            %d\n", health.Stars)
	fmt.Fprintf(p.out, "Forks:            %d\n", health.Forks)
	fmt.Fprintf(p.out, "Open issues:      %d\n", health.OpenIssues)
	fmt.Fprintf(p.out, "Last update:      %d days ago\n", health.DaysSinceUpdate)
	fmt.Fprintf(p.out, "CONTRIBUTING.md:  %s\n\n", yesNo(health.HasContributingGuide))
}

// PrintCacheStats outputs hit/miss counters per namespace.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCacheStats(stats cache.Stats) {
	p.printHeader("Cache Statistics")

	names := make([]string, 0, len(stats.Namespaces))
	for ns := range stats.Namespaces {
		names = append(names, string(ns))
	}
	sort.Strings(names)

	for _, name := range names {
		ns := stats.Namespaces[cache.Namespace(name)]
		fmt.Fprintf(p.out, "%-10s %d entries, %d hits, %d misses\n", name+":", ns.Entries, ns.Hits, ns.Misses)
	}

	hits, misses := stats.Total()
	if hits+misses > 0 {
		fmt.Fprintf(p.out, "Hit rate:  %.0f%%\n", float64(hits)/float64(hits+misses)*100)
	}
	fmt.Fprintln(p.out)
}

// PrintFavorites outputs the saved issues, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFavorites(favs []*favorites.Favorite) {
	if len(favs) == 0 {
		fmt.Fprintln(p.out, "No favorites saved yet.")
		return
	}

	p.printHeader(fmt.Sprintf("Favorites (%d)", len(favs)))
	fmt.Fprintln(p.out)

	count := min(len(favs), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := favs[i]
		fmt.Fprintf(p.out, "%s — %s\n", f.IssueRef.String(), truncate(f.Title, 70))
		fmt.Fprintf(p.out, "  status: %s | saved %s", f.Status, f.SavedAt.Format("2006-01-02"))
		if f.Difficulty != "" {
			fmt.Fprintf(p.out, " | %s", f.Difficulty)
		}
		fmt.Fprintln(p.out)
		if len(f.Tags) > 0 {
			fmt.Fprintf(p.out, "  tags: %s\n", strings.Join(f.Tags, ", "))
		}
	}
	if len(favs) > maxItemsToShow {
		fmt.Fprintf(p.out, "... and %d more\n", len(favs)-maxItemsToShow)
	}
	fmt.Fprintln(p.out)
}

// PrintFavoriteDetail outputs one favorite in full.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFavoriteDetail(f *favorites.Favorite) {
	if f == nil {
		return
	}

	p.printHeader(fmt.Sprintf("%s #%d", f.IssueRef.RepoFullName, f.IssueRef.Number))
	fmt.Fprintf(p.out, "Title:      %s\n", f.Title)
	fmt.Fprintf(p.out, "URL:        %s\n", f.URL)
	fmt.Fprintf(p.out, "Status:     %s\n", f.Status)
	fmt.Fprintf(p.out, "Saved:      %s\n", f.SavedAt.Format("2006-01-02 15:04"))
	if f.Difficulty != "" {
		fmt.Fprintf(p.out, "Difficulty: %s (%s)\n", f.Difficulty, formatHours(f.EstimatedHours))
	}
	if f.Summary != "" {
		fmt.Fprintf(p.out, "Summary:    %s\n", f.Summary)
	}
	if len(f.Tags) > 0 {
		fmt.Fprintf(p.out, "Tags:       %s\n", strings.Join(f.Tags, ", "))
	}
	if f.Notes != "" {
		fmt.Fprintf(p.out, "Notes:      %s\n", f.Notes)
	}
	fmt.Fprintln(p.out)
}

// PrintHistory outputs viewing history entries, most recent first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(entries []*history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No history recorded yet.")
		return
	}

	p.printHeader(fmt.Sprintf("History (%d)", len(entries)))
	fmt.Fprintln(p.out)

	for _, e := range entries {
		fmt.Fprintf(p.out, "%s — %s\n", e.IssueRef.String(), truncate(e.Title, 70))
		fmt.Fprintf(p.out, "  %s | viewed %dx | last seen %s\n",
			e.Status, e.ViewCount, e.LastSeen.Format("2006-01-02"))
	}
	fmt.Fprintln(p.out)
}

// PrintHistoryStats outputs aggregate history statistics.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistoryStats(stats *history.Stats) {
	if stats == nil {
		return
	}

	p.printHeader("History Statistics")
	fmt.Fprintf(p.out, "Total issues seen: %d\n", stats.Total)
	fmt.Fprintf(p.out, "Last 7 days:       %d\n", stats.RecentWeek)
	fmt.Fprintf(p.out, "Last 30 days:      %d\n", stats.RecentMonth)
	fmt.Fprintf(p.out, "Completion rate:   %.0f%%\n", stats.CompletionRate*100)

	if len(stats.ByStatus) > 0 {
		fmt.Fprintln(p.out, "\nBy status:")
		statuses := make([]string, 0, len(stats.ByStatus))
		for s := range stats.ByStatus {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			fmt.Fprintf(p.out, "  %-12s %d\n", s+":", stats.ByStatus[history.Status(s)])
		}
	}

	if len(stats.MostViewed) > 0 {
		fmt.Fprintln(p.out, "\nMost viewed:")
		for _, e := range stats.MostViewed {
			fmt.Fprintf(p.out, "  %s (%dx) — %s\n", e.IssueRef.String(), e.ViewCount, truncate(e.Title, 50))
		}
	}
	fmt.Fprintln(p.out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func formatHours(r types.HourRange) string {
	return fmt.Sprintf("%.0f-%.0f hours", r.Low, r.High)
}

func budgetLabel(t types.TimeBudget) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
