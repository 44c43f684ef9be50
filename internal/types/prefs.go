package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SkillLevel is a closed difficulty enum shared by preferences, label
// mappings, and AI analyses.
type SkillLevel string

// Skill levels in ascending order of difficulty.
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SkillLevels lists all valid skill levels in ascending order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}

// Index returns the position of the level in the difficulty order, or -1
// for an unrecognized value.
func (s SkillLevel) Index() int {
	for i, level := range SkillLevels {
		if level == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the value is a member of the closed set.
func (s SkillLevel) Valid() bool {
	return s.Index() >= 0
}

// TimeBudget is a closed enum of how much time the user can commit.
type TimeBudget string

// Time budgets in ascending order of commitment.
const (
	TimeQuickWin TimeBudget = "quick_win"
	TimeHalfDay  TimeBudget = "half_day"
	TimeFullDay  TimeBudget = "full_day"
	TimeWeekend  TimeBudget = "weekend"
	TimeDeepDive TimeBudget = "deep_dive"
)

// TimeBudgets lists all valid time budgets in ascending order.
var TimeBudgets = []TimeBudget{TimeQuickWin, TimeHalfDay, TimeFullDay, TimeWeekend, TimeDeepDive}

// Index returns the position of the budget in the time order, or -1 for an
// unrecognized value.
func (t TimeBudget) Index() int {
	for i, budget := range TimeBudgets {
		if budget == t {
			return i
		}
	}
	return -1
}

// Valid reports whether the value is a member of the closed set.
func (t TimeBudget) Valid() bool {
	return t.Index() >= 0
}

// HourRange is the canonical (low, high] hour window implied by a budget.
// DeepDive is open-ended; it is modeled with a large finite upper bound so
// overlap arithmetic stays well defined.
type HourRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

var timeBudgetHours = map[TimeBudget]HourRange{
	TimeQuickWin: {Low: 0, High: 2},
	TimeHalfDay:  {Low: 2, High: 4},
	TimeFullDay:  {Low: 4, High: 8},
	TimeWeekend:  {Low: 8, High: 24},
	TimeDeepDive: {Low: 24, High: 1000},
}

// Hours returns the canonical hour range for the budget. The second return
// is false for unrecognized values.
func (t TimeBudget) Hours() (HourRange, bool) {
	r, ok := timeBudgetHours[t]
	return r, ok
}

// UserPreferences is the user's stated search profile. Skill and time are
// required closed-set inputs; topic and language are free text normalized
// downstream.
type UserPreferences struct {
	Topic      string     `json:"topic"`
	Language   string     `json:"language"`
	Skill      SkillLevel `json:"skill" validate:"required,oneof=beginner intermediate advanced"`
	TimeBudget TimeBudget `json:"time_budget" validate:"required,oneof=quick_win half_day full_day weekend deep_dive"`
}

// Validate checks the closed-set fields using the validator. A failure here
// is a configuration error; scoring must not run with an unrecognized skill
// or time budget.
func (p *UserPreferences) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}
