package types

// AnalysisResult is the structured output of the AI analysis of one issue.
// Produced once per issue per request fingerprint and cached under the
// analysis namespace.
type AnalysisResult struct {
	IssueRef              IssueRef   `json:"issue_ref"`
	Difficulty            SkillLevel `json:"difficulty"`
	EstimatedHours        HourRange  `json:"estimated_hours"`
	ClarityScore          float64    `json:"clarity_score"` // 0..1
	TechnicalRequirements []string   `json:"technical_requirements"`
	Summary               string     `json:"summary"`
	Recommendation        string     `json:"recommendation,omitempty"`
	ModelVersion          string     `json:"model_version,omitempty"`
}
