package types

// Confidence classifies how much the four sub-scores agree. It is distinct
// from the overall score's magnitude: a high average reached by one
// dominant signal is not high confidence.
type Confidence string

// Confidence bands.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ScoreBreakdown holds the four sub-scores, the weighted overall score, and
// the confidence classification for one (issue, analysis, preferences)
// triple. It is a computed view, never persisted.
type ScoreBreakdown struct {
	DifficultyMatch float64    `json:"difficulty_match"`
	TimeMatch       float64    `json:"time_match"`
	RepoHealth      float64    `json:"repo_health"`
	IssueClarity    float64    `json:"issue_clarity"`
	Overall         float64    `json:"overall"`
	Confidence      Confidence `json:"confidence"`
}

// SubScores returns the four component scores in a fixed order, convenient
// for spread/variance computation.
func (b *ScoreBreakdown) SubScores() [4]float64 {
	return [4]float64{b.DifficultyMatch, b.TimeMatch, b.RepoHealth, b.IssueClarity}
}

// RankedIssue pairs an issue with its analysis and computed score; the
// ranking pipeline yields these in descending match order.
type RankedIssue struct {
	Issue    IssueRecord    `json:"issue"`
	Analysis AnalysisResult `json:"analysis"`
	Score    ScoreBreakdown `json:"score"`
}
