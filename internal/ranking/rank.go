// Package ranking orchestrates the label interpreter and scoring engine over
// a batch of analyzed issues to produce an ordered, explainable result list.
package ranking

import (
	"fmt"
	"sort"

	"github.com/jonathan/issue-scout/internal/scoring"
	"github.com/jonathan/issue-scout/internal/types"
)

// DifficultyResolver infers a skill level from a repository's raw issue
// labels. The second return is false when nothing matched.
type DifficultyResolver interface {
	Resolve(repoFullName string, rawLabels []string) (types.SkillLevel, bool)
}

// Options controls one ranking invocation.
type Options struct {
	// Limit truncates the result list after sorting; zero means no limit.
	// Truncation always happens after the global sort, so the reported top-N
	// is the true top-N.
	Limit int
	// Seen excludes previously viewed issues before any scoring work.
	Seen map[types.IssueRef]bool
}

// Rank scores and orders the given issues. Issues without an analysis entry
// are dropped (a failed analysis must not abort the batch), seen issues are
// filtered before scoring, and ties are broken by clarity then stars so the
// output is deterministic for a fixed input set.
func Rank(
	engine *scoring.Engine,
	resolver DifficultyResolver,
	issues []types.IssueRecord,
	analyses map[types.IssueRef]types.AnalysisResult,
	prefs *types.UserPreferences,
	opts Options,
) ([]types.RankedIssue, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]types.RankedIssue, 0, len(issues))
	for _, issue := range issues {
		ref := issue.Ref()
		if opts.Seen[ref] {
			continue
		}
		analysis, ok := analyses[ref]
		if !ok {
			continue
		}

		var effective types.SkillLevel
		if resolver != nil {
			if level, resolved := resolver.Resolve(issue.RepoFullName, issue.Labels); resolved {
				effective = level
			}
		}

		ranked = append(ranked, types.RankedIssue{
			Issue:    issue,
			Analysis: analysis,
			Score:    engine.Score(&issue, &analysis, prefs, effective),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].Score, ranked[j].Score
		if si.Overall != sj.Overall {
			return si.Overall > sj.Overall
		}
		if si.IssueClarity != sj.IssueClarity {
			return si.IssueClarity > sj.IssueClarity
		}
		return ranked[i].Issue.RepoStars > ranked[j].Issue.RepoStars
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked, nil
}
