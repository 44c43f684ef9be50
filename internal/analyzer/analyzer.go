// Package analyzer turns raw GitHub issues into structured AI analyses.
// Each issue is analyzed independently; batches fan out over a bounded
// worker group and completed analyses are cached so a re-run within the
// cache window costs no model calls.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/issue-scout/internal/cache"
	"github.com/jonathan/issue-scout/internal/llm"
	"github.com/jonathan/issue-scout/internal/types"
)

// DefaultConcurrency bounds how many issues are analyzed at once.
const DefaultConcurrency = 4

// maxBodyChars truncates pathological issue bodies before prompting.
const maxBodyChars = 12000

// Analyzer analyzes issues with an LLM client and caches the results.
type Analyzer struct {
	client      llm.Client
	cache       *cache.Store
	log         *zap.Logger
	tier        llm.ModelTier
	concurrency int
}

// Options configures an Analyzer. Zero values fall back to defaults.
type Options struct {
	Tier        llm.ModelTier
	Concurrency int
}

// New creates an Analyzer. The cache may be a disabled store but must not be
// nil.
func New(client llm.Client, store *cache.Store, log *zap.Logger, opts Options) (*Analyzer, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	tier := opts.Tier
	if tier == "" {
		tier = llm.TierStandard
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Analyzer{
		client:      client,
		cache:       store,
		log:         log,
		tier:        tier,
		concurrency: concurrency,
	}, nil
}

// ModelVersion returns the model name stamped onto analyses, which also
// scopes cache keys so a model upgrade invalidates old analyses.
func (a *Analyzer) ModelVersion() string {
	return a.client.GetModel(a.tier)
}

// Analyze returns the analysis for a single issue, from cache when a fresh
// entry exists for the same issue revision, model, and user profile.
func (a *Analyzer) Analyze(ctx context.Context, issue *types.IssueRecord, prefs *types.UserPreferences) (types.AnalysisResult, error) {
	key := a.cacheKey(issue, prefs)

	var cached types.AnalysisResult
	if a.cache.GetJSON(cache.NamespaceAnalysis, key, &cached) {
		return cached, nil
	}

	result, err := a.analyzeUncached(ctx, issue, prefs)
	if err != nil {
		return types.AnalysisResult{}, err
	}

	a.cache.SetJSON(cache.NamespaceAnalysis, key, result, 0)
	return result, nil
}

// AnalyzeBatch analyzes a slice of issues with bounded concurrency. A failed
// issue does not abort the batch: its error is recorded and the remaining
// analyses are still returned. The returned error is non-nil only when every
// issue failed.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, issues []*types.IssueRecord, prefs *types.UserPreferences) (map[types.IssueRef]types.AnalysisResult, error) {
	results := make(map[types.IssueRef]types.AnalysisResult, len(issues))
	if len(issues) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	var failed int

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for _, issue := range issues {
		issue := issue
		g.Go(func() error {
			result, err := a.Analyze(gCtx, issue, prefs)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				a.log.Warn("issue analysis failed",
					zap.String("issue", issue.Ref().String()),
					zap.Error(err))
				// Degrade to partial results instead of cancelling peers.
				return nil
			}
			results[issue.Ref()] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if failed == len(issues) {
		return results, fmt.Errorf("all %d issue analyses failed", failed)
	}
	return results, nil
}

// analyzeUncached runs the model and parses its response.
func (a *Analyzer) analyzeUncached(ctx context.Context, issue *types.IssueRecord, prefs *types.UserPreferences) (types.AnalysisResult, error) {
	prompt := llm.BuildExtractionPrompt(llm.IssueAnalysisSchema(), issueText(issue, prefs))

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to analyze %s: %w", issue.Ref(), err)
	}

	result, err := parseAnalysis(raw, issue.Ref())
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to parse analysis of %s: %w", issue.Ref(), err)
	}
	result.ModelVersion = a.ModelVersion()
	return result, nil
}

// cacheKey fingerprints the issue revision, model, and user profile so that
// an edited issue, an upgraded model, or a different reader never serves a
// stale analysis.
func (a *Analyzer) cacheKey(issue *types.IssueRecord, prefs *types.UserPreferences) string {
	params := map[string]string{
		"repo":       issue.RepoFullName,
		"number":     strconv.Itoa(issue.Number),
		"updated_at": issue.UpdatedAt.UTC().Format(time.RFC3339),
		"model":      a.ModelVersion(),
	}
	if prefs != nil {
		params["skill"] = string(prefs.Skill)
		params["time_budget"] = string(prefs.TimeBudget)
	}
	return cache.Fingerprint(params)
}

// issueText renders the issue and the reader's profile into the prompt input
// block.
func issueText(issue *types.IssueRecord, prefs *types.UserPreferences) string {
	var sb strings.Builder
	if prefs != nil {
		fmt.Fprintf(&sb, "Contributor profile: %s skill level, time budget %s.\n\n",
			prefs.Skill, prefs.TimeBudget)
	}
	fmt.Fprintf(&sb, "Repository: %s", issue.RepoFullName)
	if issue.RepoDescription != "" {
		fmt.Fprintf(&sb, " (%s)", issue.RepoDescription)
	}
	fmt.Fprintf(&sb, "\nIssue #%d: %s\n", issue.Number, issue.Title)
	if len(issue.Labels) > 0 {
		fmt.Fprintf(&sb, "Labels: %s\n", strings.Join(issue.Labels, ", "))
	}
	fmt.Fprintf(&sb, "Comments: %d\n", issue.CommentsCount)

	body := strings.TrimSpace(issue.Body)
	if body == "" {
		body = "(no description provided)"
	}
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars] + "\n[truncated]"
	}
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String()
}

// rawAnalysis mirrors the JSON shape the model is asked to produce.
type rawAnalysis struct {
	Difficulty            string   `json:"difficulty"`
	EstimatedHours        rawHours `json:"estimated_hours"`
	ClarityScore          float64  `json:"clarity_score"`
	TechnicalRequirements []string `json:"technical_requirements"`
	Summary               string   `json:"summary"`
	Recommendation        string   `json:"recommendation"`
}

type rawHours struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// parseAnalysis validates the model output. A payload that fails validation
// is rejected rather than repaired: scoring must never see out-of-range
// values.
func parseAnalysis(raw string, ref types.IssueRef) (types.AnalysisResult, error) {
	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &parsed); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("invalid JSON: %w", err)
	}

	difficulty := types.SkillLevel(strings.ToLower(strings.TrimSpace(parsed.Difficulty)))
	if !difficulty.Valid() {
		return types.AnalysisResult{}, fmt.Errorf("unknown difficulty %q", parsed.Difficulty)
	}
	if parsed.ClarityScore < 0 || parsed.ClarityScore > 1 {
		return types.AnalysisResult{}, fmt.Errorf("clarity_score %v out of range", parsed.ClarityScore)
	}
	if parsed.EstimatedHours.Min < 0 || parsed.EstimatedHours.Max < parsed.EstimatedHours.Min {
		return types.AnalysisResult{}, fmt.Errorf("invalid estimated_hours range [%v, %v]",
			parsed.EstimatedHours.Min, parsed.EstimatedHours.Max)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return types.AnalysisResult{}, fmt.Errorf("empty summary")
	}

	reqs := make([]string, 0, len(parsed.TechnicalRequirements))
	for _, r := range parsed.TechnicalRequirements {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}

	return types.AnalysisResult{
		IssueRef:   ref,
		Difficulty: difficulty,
		EstimatedHours: types.HourRange{
			Low:  parsed.EstimatedHours.Min,
			High: parsed.EstimatedHours.Max,
		},
		ClarityScore:          parsed.ClarityScore,
		TechnicalRequirements: reqs,
		Summary:               strings.TrimSpace(parsed.Summary),
		Recommendation:        strings.TrimSpace(parsed.Recommendation),
	}, nil
}
