package github

import (
	"fmt"
	"strings"

	"github.com/jonathan/issue-scout/internal/types"
)

// MinRepoStars filters out repositories with no community around them.
const MinRepoStars = 50

// topicKeywords maps a user-facing topic to repository topic keywords. The
// first keyword is used in the search query; unknown topics fall through to
// the raw value.
var topicKeywords = map[string][]string{
	"ai":       {"machine-learning", "deep-learning", "artificial-intelligence", "ml", "ai"},
	"web":      {"web", "frontend", "react", "vue", "angular", "css", "html"},
	"backend":  {"backend", "api", "server", "database", "rest", "graphql"},
	"devops":   {"devops", "docker", "kubernetes", "ci-cd", "infrastructure"},
	"mobile":   {"mobile", "ios", "android", "react-native", "flutter"},
	"data":     {"data-science", "analytics", "visualization", "pandas"},
	"security": {"security", "authentication", "encryption"},
}

// Topics lists the known topic shortcuts, for help text.
func Topics() []string {
	names := make([]string, 0, len(topicKeywords))
	for name := range topicKeywords {
		names = append(names, name)
	}
	return names
}

// BuildSearchQuery translates user preferences into GitHub search syntax.
//
// Base filters exclude pull requests, closed issues, and issues someone is
// already working on. Difficulty maps to the conventional labels for
// beginner and intermediate; advanced issues carry no reliable label, so the
// query stays unfiltered and difficulty is left to the analysis stage.
func BuildSearchQuery(prefs *types.UserPreferences) string {
	parts := []string{
		"is:issue",
		"is:open",
		"no:assignee",
	}

	if lang := strings.ToLower(strings.TrimSpace(prefs.Language)); lang != "" && lang != "any" {
		parts = append(parts, "language:"+lang)
	}

	switch prefs.Skill {
	case types.SkillBeginner:
		parts = append(parts, `label:"good first issue"`)
	case types.SkillIntermediate:
		parts = append(parts, `label:"help wanted"`)
	}

	if topic := strings.ToLower(strings.TrimSpace(prefs.Topic)); topic != "" && topic != "any" {
		keyword := topic
		if kws, ok := topicKeywords[topic]; ok && len(kws) > 0 {
			keyword = kws[0]
		}
		parts = append(parts, "topic:"+keyword)
	}

	parts = append(parts, fmt.Sprintf("stars:>%d", MinRepoStars))

	return strings.Join(parts, " ")
}
