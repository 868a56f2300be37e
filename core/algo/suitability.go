package algo

import (
	"strings"
	"unicode"

	"github.com/huangsam/capsule/schema"
)

// suitabilityFamily maps scenario keywords to the garments and styles that suit them.
type suitabilityFamily struct {
	name     string
	keywords []string // matched as whole words of the scenario name
	tokens   []string // matched as substrings of the item subcategory
	styles   []string // matched exactly against the item style
}

// suitabilityFamilies is the curated scenario table. It is a best-effort heuristic:
// names outside every family fall back to versatileTokens.
var suitabilityFamilies = []suitabilityFamily{
	{
		name:     "office",
		keywords: []string{"office", "work", "professional", "business", "meeting"},
		tokens: []string{
			"blazer", "shirt", "blouse", "trousers", "pants", "skirt", "dress",
			"loafers", "heels", "flats", "oxford", "pumps", "cardigan", "sweater",
		},
		styles: []string{"business", "formal", "classic", "smart"},
	},
	{
		name:     "casual",
		keywords: []string{"casual", "weekend", "errand"},
		tokens: []string{
			"t-shirt", "jeans", "sneakers", "sweater", "hoodie", "shorts",
			"cardigan", "dress", "flats", "sandals",
		},
		styles: []string{"casual"},
	},
	{
		name:     "evening",
		keywords: []string{"dinner", "evening", "date", "party"},
		tokens:   []string{"dress", "heels", "blouse", "skirt", "jumpsuit", "trousers", "boots"},
		styles:   []string{"elegant", "formal", "evening"},
	},
	{
		name:     "active",
		keywords: []string{"exercise", "gym", "workout", "sport", "hiking", "yoga", "run", "running"},
		tokens: []string{
			"leggings", "sneakers", "trainers", "sports bra", "shorts", "tank",
			"t-shirt", "hoodie",
		},
		styles: []string{"athletic", "sporty", "activewear"},
	},
}

// versatileTokens are suitable for any scenario that matches no family.
var versatileTokens = []string{"jeans", "shirt", "sweater", "cardigan", "dress"}

// MatchedFamilies returns the names of the suitability families whose keywords
// appear in the scenario name.
func MatchedFamilies(scenarioName string) []string {
	words := scenarioWords(scenarioName)
	var names []string
	for _, fam := range suitabilityFamilies {
		if hasKeyword(words, fam.keywords) {
			names = append(names, fam.name)
		}
	}
	return names
}

// IsSuitable reports whether an untagged item suits a scenario.
// The union of all matching families is consulted; when none match,
// the versatile fallback set applies.
func IsSuitable(item schema.WardrobeItem, scenarioName string) bool {
	words := scenarioWords(scenarioName)
	sub := schema.NormalizeKey(item.Subcategory)
	style := schema.NormalizeKey(item.Style)

	matched := false
	for _, fam := range suitabilityFamilies {
		if !hasKeyword(words, fam.keywords) {
			continue
		}
		matched = true
		if containsAny(sub, fam.tokens) || equalsAny(style, fam.styles) {
			return true
		}
	}
	if matched {
		return false
	}
	return containsAny(sub, versatileTokens)
}

// IsApplicable reports whether an item takes part in outfits for a scenario and season.
// Tagged items match by tag only; untagged items go through IsSuitable.
func IsApplicable(item schema.WardrobeItem, scenarioName string, season schema.Season) bool {
	if !item.FitsSeason(season) {
		return false
	}
	if item.IsTagged() {
		return item.TaggedFor(scenarioName)
	}
	return IsSuitable(item, scenarioName)
}

// restrictedScenarios forbid formal footwear.
var restrictedScenarios = []string{
	"light outdoor activities", "staying at home", "exercise", "sports", "hiking", "gym",
}

// restrictedTokens are the garments restrictedScenarios forbid.
var restrictedTokens = []string{"heels", "dress shoes", "formal shoes"}

// IsAppropriate reports whether a candidate with this category and subcategory
// may be recommended for the scenario. Scenarios outside the deny-list accept anything.
func IsAppropriate(scenarioName, category, subcategory string) bool {
	name := schema.NormalizeKey(scenarioName)
	if !containsAny(name, restrictedScenarios) {
		return true
	}
	return !containsAny(schema.NormalizeKey(subcategory), restrictedTokens) &&
		!containsAny(schema.NormalizeKey(category), restrictedTokens)
}

// scenarioWords splits a scenario name into lowercase words.
func scenarioWords(scenarioName string) []string {
	return strings.FieldsFunc(schema.NormalizeKey(scenarioName), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// hasKeyword reports whether any word is a keyword or its plural.
func hasKeyword(words, keywords []string) bool {
	for _, w := range words {
		for _, k := range keywords {
			if w == k || w == k+"s" || w == k+"es" {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func equalsAny(s string, values []string) bool {
	if s == "" {
		return false
	}
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
