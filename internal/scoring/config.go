// Package scoring computes multi-factor match scores and confidence bands
// for analyzed issues.
package scoring

import (
	"fmt"
	"math"
)

// Config holds every tunable constant of the scoring engine. It is passed
// explicitly at construction rather than read from ambient state so the
// engine stays deterministic under test.
type Config struct {
	// Weights for the four sub-scores; must sum to 1. Difficulty and time
	// carry the most weight because they encode explicit user intent.
	DifficultyWeight float64
	TimeWeight       float64
	HealthWeight     float64
	ClarityWeight    float64

	// AdjacentCredit is the difficulty_match value for levels one step apart.
	AdjacentCredit float64
	// NeutralDifficulty is used when neither labels nor analysis yield a
	// recognizable difficulty.
	NeutralDifficulty float64

	// TimeDecayHours controls how fast time_match decays once the analysis
	// hour range and the budget range are disjoint: the no-overlap score is
	// NoOverlapCredit / (1 + gap/TimeDecayHours).
	TimeDecayHours  float64
	NoOverlapCredit float64

	// StarHalfSaturation is the star count at which the star component of
	// repo_health reaches 0.5; the curve saturates and never reaches 1.0.
	StarHalfSaturation float64
	// StalenessWindowDays is the window over which recency decays linearly
	// to zero.
	StalenessWindowDays float64
	// StarsShare is the fraction of repo_health carried by stars; the rest
	// is recency.
	StarsShare float64

	// EmptyRequirementsPenalty multiplies issue_clarity when the analysis
	// identified no technical requirements (an under-specified issue).
	EmptyRequirementsPenalty float64

	// Confidence banding.
	LowScoreFloor       float64 // any sub-score below this caps confidence at low
	HighVarianceCeiling float64 // population variance at or below this permits high
	HighOverallFloor    float64 // overall at or above this permits high
	DominanceGap        float64 // max-min spread above this caps confidence at medium
}

// DefaultConfig returns the shipped scoring constants.
func DefaultConfig() Config {
	return Config{
		DifficultyWeight: 0.40,
		TimeWeight:       0.30,
		HealthWeight:     0.15,
		ClarityWeight:    0.15,

		AdjacentCredit:    0.5,
		NeutralDifficulty: 0.5,

		TimeDecayHours:  8,
		NoOverlapCredit: 0.5,

		StarHalfSaturation:  5000,
		StalenessWindowDays: 365,
		StarsShare:          0.6,

		EmptyRequirementsPenalty: 0.75,

		LowScoreFloor:       0.3,
		HighVarianceCeiling: 0.03,
		HighOverallFloor:    0.7,
		DominanceGap:        0.35,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	sum := c.DifficultyWeight + c.TimeWeight + c.HealthWeight + c.ClarityWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}
	for name, w := range map[string]float64{
		"difficulty": c.DifficultyWeight,
		"time":       c.TimeWeight,
		"health":     c.HealthWeight,
		"clarity":    c.ClarityWeight,
	} {
		if w < 0 {
			return fmt.Errorf("scoring weight %s must be non-negative", name)
		}
	}
	if c.StarHalfSaturation <= 0 {
		return fmt.Errorf("star half-saturation must be positive")
	}
	if c.StalenessWindowDays <= 0 {
		return fmt.Errorf("staleness window must be positive")
	}
	if c.StarsShare < 0 || c.StarsShare > 1 {
		return fmt.Errorf("stars share must be in [0,1]")
	}
	if c.EmptyRequirementsPenalty < 0 || c.EmptyRequirementsPenalty > 1 {
		return fmt.Errorf("empty requirements penalty must be in [0,1]")
	}
	return nil
}
