// Package pipeline provides the high-level orchestration for one discovery
// run: search, analysis, ranking, history recording, and presentation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/issue-scout/internal/analyzer"
	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/export"
	"github.com/jonathan/issue-scout/internal/github"
	"github.com/jonathan/issue-scout/internal/history"
	"github.com/jonathan/issue-scout/internal/labelmap"
	"github.com/jonathan/issue-scout/internal/llm"
	"github.com/jonathan/issue-scout/internal/logging"
	"github.com/jonathan/issue-scout/internal/observability"
	"github.com/jonathan/issue-scout/internal/ranking"
	"github.com/jonathan/issue-scout/internal/scoring"
	"github.com/jonathan/issue-scout/internal/types"
)

// IssueSearcher finds candidate issues matching the user's preferences.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, prefs *types.UserPreferences, maxResults int) ([]*types.IssueRecord, error)
}

// IssueAnalyzer produces an AnalysisResult per issue; partial results are
// acceptable.
type IssueAnalyzer interface {
	AnalyzeBatch(ctx context.Context, issues []*types.IssueRecord, prefs *types.UserPreferences) (map[types.IssueRef]types.AnalysisResult, error)
}

// RunOptions holds configuration for one discovery run.
type RunOptions struct {
	Prefs       *types.UserPreferences
	MaxResults  int
	Limit       int
	SkipSeen    bool // exclude issues already in history
	ExportPath  string
	Verbose     bool
	APIKey      string
	GithubToken string
	ModelTier   string
	Concurrency int
	DataDir     string
	CachePath   string
	Out         io.Writer
}

// deps bundles the collaborators so the orchestration logic can be tested
// with stubs.
type deps struct {
	search   IssueSearcher
	analyze  IssueAnalyzer
	log      *zap.Logger
	engine   *scoring.Engine
	resolver ranking.DifficultyResolver
	history  *history.Manager
	exporter *export.Exporter
	printer  *observability.Printer
}

// Run executes the full discovery flow with real collaborators. The cache
// degrades to a disabled store when its file cannot be opened; a missing
// GitHub token only lowers the rate limit.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	log := logging.New(opts.Verbose)
	defer func() { _ = log.Sync() }()

	store, err := cache.New(cache.DefaultConfig(opts.CachePath), log)
	if err != nil {
		log.Warn("cache unavailable, continuing without it", zap.Error(err))
		store = cache.NewDisabled(log)
	}
	defer func() { _ = store.Close() }()

	gh, err := github.NewClient(store, log, github.Options{
		Token:      opts.GithubToken,
		MaxResults: opts.MaxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to create github client: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), opts.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}
	defer func() { _ = client.Close() }()

	an, err := analyzer.New(client, store, log, analyzer.Options{
		Tier:        llm.ModelTier(opts.ModelTier),
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	labels, err := labelmap.NewManager(opts.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load label mappings: %w", err)
	}

	hist, err := history.NewManager(opts.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	d := deps{
		search:   gh,
		analyze:  an,
		log:      log,
		engine:   engine,
		resolver: labels,
		history:  hist,
		exporter: export.NewExporter(log),
		printer:  observability.NewPrinter(opts.Out),
	}
	return run(ctx, d, opts)
}

// run is the collaborator-agnostic orchestration.
func run(ctx context.Context, d deps, opts RunOptions) error {
	prefs := opts.Prefs
	if prefs == nil {
		return fmt.Errorf("preferences are required")
	}
	if err := prefs.Validate(); err != nil {
		return err
	}

	if opts.Verbose {
		d.printer.PrintPreferences(prefs)
	}

	issues, err := d.search.SearchIssues(ctx, prefs, opts.MaxResults)
	if err != nil {
		return fmt.Errorf("failed to search issues: %w", err)
	}
	if len(issues) == 0 {
		d.printer.PrintRankedIssues(nil, opts.Verbose)
		return nil
	}
	d.log.Debug("search complete", zap.Int("issues", len(issues)))

	analyses, err := d.analyze.AnalyzeBatch(ctx, issues, prefs)
	if err != nil {
		return fmt.Errorf("failed to analyze issues: %w", err)
	}
	d.log.Debug("analysis complete", zap.Int("analyzed", len(analyses)))

	var seen map[types.IssueRef]bool
	if opts.SkipSeen && d.history != nil {
		seen = d.history.SeenRefs()
	}

	records := make([]types.IssueRecord, 0, len(issues))
	for _, issue := range issues {
		records = append(records, *issue)
	}
	ranked, err := ranking.Rank(d.engine, d.resolver, records, analyses, prefs, ranking.Options{
		Limit: opts.Limit,
		Seen:  seen,
	})
	if err != nil {
		return fmt.Errorf("failed to rank issues: %w", err)
	}

	if d.history != nil {
		if err := recordPresented(d.history, ranked); err != nil {
			d.log.Warn("failed to record history", zap.Error(err))
		}
	}

	d.printer.PrintRankedIssues(ranked, opts.Verbose)

	if opts.ExportPath != "" {
		report, err := d.exporter.Export(ranked, prefs, opts.ExportPath, export.DetectFormat(opts.ExportPath))
		if err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		_, _ = fmt.Fprintf(opts.Out, "Exported %d results to %s (report %s)\n",
			report.TotalResults, opts.ExportPath, report.ReportID)
	}
	return nil
}

// recordPresented marks every presented issue as viewed so later runs can
// filter or deprioritize it.
func recordPresented(hist *history.Manager, ranked []types.RankedIssue) error {
	issues := make([]*types.IssueRecord, 0, len(ranked))
	difficulties := make(map[types.IssueRef]types.SkillLevel, len(ranked))
	for i := range ranked {
		issue := ranked[i].Issue
		issues = append(issues, &issue)
		difficulties[issue.Ref()] = ranked[i].Analysis.Difficulty
	}
	return hist.RecordBatch(issues, difficulties)
}

// DefaultDataDir returns the per-user state directory under $HOME.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".issue-scout"
	}
	return filepath.Join(home, ".issue-scout")
}

// DefaultCachePath places the cache inside the data directory.
func DefaultCachePath(dataDir string) string {
	return filepath.Join(dataDir, "cache.db")
}
