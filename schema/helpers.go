package schema

import (
	"slices"
	"strings"
)

// categoryAliases maps loosely written category names to canonical categories.
var categoryAliases = map[string]Category{
	"top":         TopCategory,
	"tops":        TopCategory,
	"bottom":      BottomCategory,
	"bottoms":     BottomCategory,
	"one_piece":   OnePieceCategory,
	"one-piece":   OnePieceCategory,
	"onepiece":    OnePieceCategory,
	"dress":       OnePieceCategory,
	"dresses":     OnePieceCategory,
	"jumpsuit":    OnePieceCategory,
	"outerwear":   OuterwearCategory,
	"footwear":    FootwearCategory,
	"shoes":       FootwearCategory,
	"accessory":   AccessoryCategory,
	"accessories": AccessoryCategory,
}

// NormalizeKey lowercases and trims a free-text attribute for comparisons.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseCategory maps a category name to its canonical value.
// Unknown names yield false.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[NormalizeKey(s)]
	return c, ok
}

// ParseSeason maps a season name to its canonical value. "autumn" is accepted for fall
// and "all", "all season" and "all-seasons" for the all-season marker.
func ParseSeason(s string) (Season, bool) {
	key := strings.ReplaceAll(NormalizeKey(s), "_", "-")
	switch key {
	case "autumn":
		return Fall, true
	case "all", "all season", "all-seasons", "allseason":
		return AllSeason, true
	}
	season := Season(key)
	if _, ok := ValidSeasons[season]; ok {
		return season, true
	}
	return "", false
}

// ParseFrequency maps a frequency name to its canonical value.
// Unknown frequencies fall back to Weekly.
func ParseFrequency(s string) Frequency {
	f := Frequency(NormalizeKey(s))
	if _, ok := ValidFrequencies[f]; ok {
		return f
	}
	return Weekly
}

// NormalizeSeasons parses raw season names and expands the all-season marker into the four
// calendar seasons. Unknown names are dropped and the result keeps calendar order.
func NormalizeSeasons(raw []string) []Season {
	seen := make(map[Season]struct{}, len(CalendarSeasons))
	for _, r := range raw {
		s, ok := ParseSeason(r)
		if !ok {
			continue
		}
		if s == AllSeason {
			for _, cs := range CalendarSeasons {
				seen[cs] = struct{}{}
			}
			continue
		}
		seen[s] = struct{}{}
	}
	result := make([]Season, 0, len(seen))
	for _, cs := range CalendarSeasons {
		if _, ok := seen[cs]; ok {
			result = append(result, cs)
		}
	}
	return result
}

// FitsSeason reports whether an item can be worn in the given season.
// Items without seasons, or marked all-season, fit every season.
func (w WardrobeItem) FitsSeason(season Season) bool {
	if len(w.Seasons) == 0 {
		return true
	}
	for _, s := range w.Seasons {
		if s == season || s == AllSeason {
			return true
		}
	}
	return false
}

// IsTagged reports whether the item carries explicit scenario tags.
func (w WardrobeItem) IsTagged() bool {
	return slices.ContainsFunc(w.Scenarios, func(s string) bool { return NormalizeKey(s) != "" })
}

// TaggedFor reports whether the item is explicitly tagged for the scenario name.
func (w WardrobeItem) TaggedFor(scenario string) bool {
	want := NormalizeKey(scenario)
	return slices.ContainsFunc(w.Scenarios, func(s string) bool { return NormalizeKey(s) == want })
}

// IsDress reports whether the item is a one-piece dress.
func (w WardrobeItem) IsDress() bool {
	return w.Category == OnePieceCategory && !w.IsJumpsuit()
}

// IsJumpsuit reports whether the item is a one-piece jumpsuit.
func (w WardrobeItem) IsJumpsuit() bool {
	return w.Category == OnePieceCategory && strings.Contains(NormalizeKey(w.Subcategory), JumpsuitSubcategory)
}

// Attributes extracts the candidate attributes from the form.
func (f FormData) Attributes() ItemAttributes {
	return ItemAttributes{
		Category:    f.Category,
		Subcategory: f.Subcategory,
		Color:       f.Color,
		Silhouette:  f.Silhouette,
		Style:       f.Style,
	}
}

// IsOuterwear reports whether the candidate item is outerwear.
func (f FormData) IsOuterwear() bool {
	return NormalizeKey(f.Category) == string(OuterwearCategory)
}
