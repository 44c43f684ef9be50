package labelmap

import "github.com/jonathan/issue-scout/internal/types"

// defaultLabels is the global fallback mapping applied to repositories with
// no builtin or user entry. Labels are stored lower-case; matching is
// case-insensitive.
var defaultLabels = map[types.SkillLevel][]string{
	types.SkillBeginner: {
		"good first issue",
		"beginner",
		"easy",
		"starter",
		"first-timers-only",
		"good-first-issue",
		"low-hanging-fruit",
	},
	types.SkillIntermediate: {
		"help wanted",
		"intermediate",
		"medium",
	},
	types.SkillAdvanced: {
		"advanced",
		"hard",
		"expert",
		"complex",
	},
}

type builtinEntry struct {
	levels map[types.SkillLevel][]string
	notes  string
}

// builtinMappings seeds per-repository conventions for popular projects
// whose labels diverge from the defaults. Read-only.
var builtinMappings = map[string]builtinEntry{
	"rust-lang/rust": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"e-easy", "e-mentor"},
			types.SkillIntermediate: {"e-medium", "e-needs-mentor"},
			types.SkillAdvanced:     {"e-hard"},
		},
		notes: "Rust uses E- prefix for difficulty levels",
	},
	"godotengine/godot": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"junior job", "good first issue"},
			types.SkillIntermediate: {"help wanted"},
			types.SkillAdvanced:     {"senior job"},
		},
		notes: "Godot uses 'junior job' for beginner issues",
	},
	"servo/servo": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"e-easy", "good first issue"},
			types.SkillIntermediate: {"e-less-easy"},
			types.SkillAdvanced:     {"e-hard"},
		},
		notes: "Servo follows Rust conventions",
	},
	"neovim/neovim": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"good first issue", "complexity:low"},
			types.SkillIntermediate: {"help wanted", "complexity:medium"},
			types.SkillAdvanced:     {"complexity:high"},
		},
		notes: "Neovim uses complexity: labels",
	},
	"python/cpython": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"easy", "good first issue"},
			types.SkillIntermediate: {"help wanted"},
			types.SkillAdvanced:     {"expert"},
		},
		notes: "CPython standard labels",
	},
	"django/django": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"easy pickings"},
			types.SkillIntermediate: {"help wanted"},
		},
		notes: "Django uses 'easy pickings' for beginner issues",
	},
	"rails/rails": {
		levels: map[types.SkillLevel][]string{
			types.SkillBeginner:     {"good first issue", "starter"},
			types.SkillIntermediate: {"help wanted"},
		},
		notes: "Rails standard labels",
	},
}
