package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/jonathan/issue-scout/internal/types"
)

// Engine turns an (issue, analysis, preferences) triple into a
// ScoreBreakdown. All constants come from the Config; the only ambient
// input is the clock, injectable for tests.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine validates the configuration and returns a scoring engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return &Engine{cfg: cfg, now: time.Now}, nil
}

// Score computes the four sub-scores, the weighted overall score, and the
// confidence classification. effectiveDifficulty is the label-derived level;
// pass the empty value when labels resolved nothing and the AI-derived
// difficulty should be used instead.
func (e *Engine) Score(
	issue *types.IssueRecord,
	analysis *types.AnalysisResult,
	prefs *types.UserPreferences,
	effectiveDifficulty types.SkillLevel,
) types.ScoreBreakdown {
	difficulty := effectiveDifficulty
	if !difficulty.Valid() {
		difficulty = analysis.Difficulty
	}

	breakdown := types.ScoreBreakdown{
		DifficultyMatch: e.difficultyMatch(difficulty, prefs.Skill),
		TimeMatch:       e.timeMatch(analysis.EstimatedHours, prefs.TimeBudget),
		RepoHealth:      e.repoHealth(issue.RepoStars, issue.UpdatedAt),
		IssueClarity:    e.issueClarity(analysis),
	}

	breakdown.Overall = clamp01(e.cfg.DifficultyWeight*breakdown.DifficultyMatch +
		e.cfg.TimeWeight*breakdown.TimeMatch +
		e.cfg.HealthWeight*breakdown.RepoHealth +
		e.cfg.ClarityWeight*breakdown.IssueClarity)
	breakdown.Confidence = e.classifyConfidence(&breakdown)

	return breakdown
}

// difficultyMatch decays symmetrically with the level distance: exact match
// scores 1.0, adjacent levels earn partial credit, and the maximal
// beginner/advanced distance scores 0.
func (e *Engine) difficultyMatch(actual, preferred types.SkillLevel) float64 {
	actualIdx := actual.Index()
	preferredIdx := preferred.Index()
	if actualIdx < 0 || preferredIdx < 0 {
		return e.cfg.NeutralDifficulty
	}

	switch abs(actualIdx - preferredIdx) {
	case 0:
		return 1.0
	case 1:
		return e.cfg.AdjacentCredit
	default:
		return 0.0
	}
}

// timeMatch scores the overlap between the analysis hour range and the
// budget's canonical range. A fully contained estimate scores 1.0; disjoint
// ranges decay inversely with the gap between their closest edges.
func (e *Engine) timeMatch(estimate types.HourRange, budget types.TimeBudget) float64 {
	budgetRange, ok := budget.Hours()
	if !ok {
		return 0.0
	}
	low, high := estimate.Low, estimate.High
	if high < low {
		low, high = high, low
	}

	width := high - low
	overlap := math.Min(high, budgetRange.High) - math.Max(low, budgetRange.Low)
	if width == 0 {
		if overlap >= 0 {
			// Point estimate inside (or touching) the budget window.
			return 1.0
		}
	} else if overlap > 0 {
		return clamp01(overlap / width)
	}

	// Disjoint or edge-touching ranges: gap decay, with a zero gap earning
	// the full no-overlap credit so a touching estimate never scores below a
	// strictly farther one.
	gap := math.Max(0, -overlap)
	return clamp01(e.cfg.NoOverlapCredit / (1 + gap/e.cfg.TimeDecayHours))
}

// repoHealth combines a saturating log-scaled star curve with linear recency
// decay. The star curve approaches but never reaches 1.0, so stars alone can
// never certify a repo as perfectly healthy; a long-untouched repo is
// penalized regardless of stars.
func (e *Engine) repoHealth(stars int, updatedAt time.Time) float64 {
	if stars < 0 {
		stars = 0
	}
	starScore := math.Log1p(float64(stars)) /
		(math.Log1p(float64(stars)) + math.Log1p(e.cfg.StarHalfSaturation))

	recency := 0.5 // neutral when the timestamp is missing
	if !updatedAt.IsZero() {
		days := e.now().Sub(updatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		recency = clamp01(1 - days/e.cfg.StalenessWindowDays)
	}

	return clamp01(e.cfg.StarsShare*starScore + (1-e.cfg.StarsShare)*recency)
}

// issueClarity passes the AI clarity score through, discounted when the
// analysis found no technical requirements at all.
func (e *Engine) issueClarity(analysis *types.AnalysisResult) float64 {
	clarity := clamp01(analysis.ClarityScore)
	if len(analysis.TechnicalRequirements) == 0 {
		clarity *= e.cfg.EmptyRequirementsPenalty
	}
	return clarity
}

// classifyConfidence bands on the agreement of the sub-scores, not their
// average. Any sub-score under the floor caps the band at low; a dominant
// sub-score caps it at medium; high requires both a strong overall score and
// low variance among the four signals.
func (e *Engine) classifyConfidence(b *types.ScoreBreakdown) types.Confidence {
	subs := b.SubScores()

	minSub, maxSub := subs[0], subs[0]
	mean := 0.0
	for _, s := range subs {
		minSub = math.Min(minSub, s)
		maxSub = math.Max(maxSub, s)
		mean += s
	}
	mean /= float64(len(subs))

	if minSub < e.cfg.LowScoreFloor {
		return types.ConfidenceLow
	}
	if maxSub-minSub > e.cfg.DominanceGap {
		return types.ConfidenceMedium
	}

	variance := 0.0
	for _, s := range subs {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(subs))

	if b.Overall >= e.cfg.HighOverallFloor && variance <= e.cfg.HighVarianceCeiling {
		return types.ConfidenceHigh
	}
	return types.ConfidenceMedium
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
