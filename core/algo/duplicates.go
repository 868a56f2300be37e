package algo

import (
	"fmt"

	"github.com/huangsam/capsule/schema"
)

// duplicateKey identifies items that look alike to a shopper.
type duplicateKey struct {
	subcategory string
	color       string
}

func keyOf(subcategory, color string) duplicateKey {
	return duplicateKey{subcategory: schema.NormalizeKey(subcategory), color: schema.NormalizeKey(color)}
}

// Recommended score bands when duplicate detection overrides scoring.
var (
	DuplicateBand = schema.ScoreBand{Min: 1, Max: 3}
	GapFillerBand = schema.ScoreBand{Min: 6, Max: 8}
)

// DuplicateSeverity maps a duplicate count to a severity.
// 0 -> none, 1 -> moderate, 2 -> high, 3+ -> critical.
func DuplicateSeverity(count int) schema.Severity {
	switch {
	case count <= 0:
		return schema.NoSeverity
	case count == 1:
		return schema.ModerateSeverity
	case count == 2:
		return schema.HighSeverity
	default:
		return schema.CriticalSeverity
	}
}

// DetectDuplicates flags wardrobe items that share both subcategory and color with the
// candidate (case-insensitive). A candidate without a subcategory or color has no duplicates.
func DetectDuplicates(candidate schema.ItemAttributes, wardrobe []schema.WardrobeItem, fillsGap bool) schema.DuplicateResult {
	index := make(map[duplicateKey][]schema.WardrobeItem, len(wardrobe))
	subcategoryTotals := make(map[string]int)
	for _, item := range wardrobe {
		k := keyOf(item.Subcategory, item.Color)
		index[k] = append(index[k], item)
		subcategoryTotals[k.subcategory]++
	}

	want := keyOf(candidate.Subcategory, candidate.Color)
	var matches []schema.WardrobeItem
	if want.subcategory != "" && want.color != "" {
		matches = index[want]
	}
	count := len(matches)

	result := schema.DuplicateResult{
		Found:    count > 0,
		Count:    count,
		Matches:  matches,
		Severity: DuplicateSeverity(count),
	}

	if want.subcategory != "" && want.color != "" {
		// After purchase the candidate's color holds count+1 of total+1 items.
		total := subcategoryTotals[want.subcategory] + 1
		result.VarietyImpact = 2*(count+1) > total && total > 1
	}

	switch {
	case result.Found:
		band := DuplicateBand
		result.RecommendedBand = &band
		result.ImpactText = fmt.Sprintf("already owns %d %s %s", count, want.color, want.subcategory)
		if result.VarietyImpact {
			result.ImpactText += fmt.Sprintf("; %s would dominate %s", want.color, want.subcategory)
		}
	case fillsGap:
		band := GapFillerBand
		result.RecommendedBand = &band
	}

	return result
}
