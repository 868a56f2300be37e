package algo

import (
	"strings"

	"github.com/huangsam/capsule/schema"
)

// conservativeGoalSlugs are profile goal identifiers that tighten scoring.
var conservativeGoalSlugs = map[string]struct{}{
	"optimize-my-wardrobe":             {},
	"buy-less-shop-more-intentionally": {},
	"declutter-downsize":               {},
	"save-money":                       {},
}

// conservativeGoalPhrases tighten scoring when found in free-text goals.
var conservativeGoalPhrases = []string{"optimize", "minimalist", "buy less", "declutter"}

// IsConservative reports whether the user's goals call for the conservative scoring tables.
func IsConservative(goals []string) bool {
	for _, goal := range goals {
		g := schema.NormalizeKey(goal)
		if g == "" {
			continue
		}
		if _, ok := conservativeGoalSlugs[g]; ok {
			return true
		}
		if containsAny(strings.Join(strings.Fields(g), " "), conservativeGoalPhrases) {
			return true
		}
	}
	return false
}
