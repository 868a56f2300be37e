package algo

import "github.com/huangsam/capsule/schema"

// Coverage level thresholds on the number of complete outfits.
var coverageLevelSteps = []int{1, 3, 6, 10, 15}

// CoverageLevel maps a number of complete outfits to the 0-5 ordinal:
// 0 -> 0, [1,3) -> 1, [3,6) -> 2, [6,10) -> 3, [10,15) -> 4, [15,inf) -> 5.
func CoverageLevel(totalOutfits int) int {
	level := 0
	for _, step := range coverageLevelSteps {
		if totalOutfits >= step {
			level++
		}
	}
	return level
}

// PartitionItems counts the applicable items per outfit role.
// Accessories do not take part in outfits and are not counted.
func PartitionItems(items []schema.WardrobeItem) schema.ItemCounts {
	var counts schema.ItemCounts
	for _, item := range items {
		switch item.Category {
		case schema.TopCategory:
			counts.Tops++
		case schema.BottomCategory:
			counts.Bottoms++
		case schema.OnePieceCategory:
			if item.IsJumpsuit() {
				counts.Jumpsuits++
			} else {
				counts.Dresses++
			}
		case schema.FootwearCategory:
			counts.Footwear++
		case schema.OuterwearCategory:
			counts.Outerwear++
		}
	}
	return counts
}

// CountOutfits sums the three disjoint outfit families for the given counts.
// Footwear is a hard precondition: without it no outfit is complete.
func CountOutfits(counts schema.ItemCounts) (int, schema.OutfitBreakdown) {
	if counts.Footwear == 0 {
		return 0, schema.OutfitBreakdown{}
	}
	breakdown := schema.OutfitBreakdown{
		TopBottom: counts.Tops * counts.Bottoms,
		Dresses:   counts.Dresses,
		Jumpsuits: counts.Jumpsuits,
	}
	return breakdown.TopBottom + breakdown.Dresses + breakdown.Jumpsuits, breakdown
}

// FindBottleneck returns the first deficiency that prevents any outfit, checked in the
// order footwear, tops-or-dresses, bottoms-or-dresses. Footwear is reported only when
// some garment exists, so an empty wardrobe reports tops-or-dresses.
func FindBottleneck(counts schema.ItemCounts, totalOutfits int) schema.Bottleneck {
	if totalOutfits > 0 {
		return schema.NoBottleneck
	}
	garments := counts.Tops + counts.Bottoms + counts.Dresses + counts.Jumpsuits
	switch {
	case counts.Footwear == 0 && garments > 0:
		return schema.FootwearBottleneck
	case counts.Tops+counts.Dresses+counts.Jumpsuits == 0:
		return schema.TopsOrDressesBottleneck
	case counts.Bottoms == 0:
		return schema.BottomsOrDressBottleneck
	}
	return schema.NoBottleneck
}

// CalculateOutfitCombinations counts the complete outfits that the wardrobe can form
// for a scenario in a season, and identifies the limiting category when there are none.
func CalculateOutfitCombinations(items []schema.WardrobeItem, scenario schema.Scenario, season schema.Season) schema.OutfitCombination {
	applicable := make([]schema.WardrobeItem, 0, len(items))
	for _, item := range items {
		if IsApplicable(item, scenario.Name, season) {
			applicable = append(applicable, item)
		}
	}

	counts := PartitionItems(applicable)
	total, breakdown := CountOutfits(counts)

	return schema.OutfitCombination{
		Scenario:      scenario.Name,
		Season:        season,
		TotalOutfits:  total,
		Breakdown:     breakdown,
		CoverageLevel: CoverageLevel(total),
		Bottleneck:    FindBottleneck(counts, total),
		ItemCounts:    counts,
	}
}
