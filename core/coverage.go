package core

import (
	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/schema"
	"go.uber.org/zap"
)

// garmentCount counts the applicable items that take part in outfits.
func garmentCount(counts schema.ItemCounts) int {
	return counts.Tops + counts.Bottoms + counts.Dresses + counts.Jumpsuits + counts.Footwear
}

// Outfits validates the input and counts outfits for every scenario in every calendar season.
func (e *Engine) Outfits(input schema.AnalysisInput) []schema.OutfitCombination {
	in := e.sanitizeInput(input)
	return e.BuildOutfitMatrix(in.Items, in.Scenarios)
}

// BuildOutfitMatrix counts outfits for every scenario in every calendar season.
func (e *Engine) BuildOutfitMatrix(items []schema.WardrobeItem, scenarios []schema.Scenario) []schema.OutfitCombination {
	combos := make([]schema.OutfitCombination, 0, len(scenarios)*len(schema.CalendarSeasons))
	for _, scenario := range scenarios {
		for _, season := range schema.CalendarSeasons {
			combos = append(combos, algo.CalculateOutfitCombinations(items, scenario, season))
		}
	}
	return combos
}

// BuildCoverage aggregates the wardrobe into regular and outerwear coverage records.
//
// Regular records cover every scenario in every calendar season and compare the applicable
// garment count with the scenario's frequency target. Outerwear records cover every season
// in which the wardrobe has at least one item and compare the outerwear count with the
// season's targets.
func (e *Engine) BuildCoverage(items []schema.WardrobeItem, scenarios []schema.Scenario) schema.CoverageData {
	var data schema.CoverageData

	for _, combo := range e.BuildOutfitMatrix(items, scenarios) {
		freq := frequencyOf(scenarios, combo.Scenario)
		current := garmentCount(combo.ItemCounts)
		data.Scenarios = append(data.Scenarios, schema.CoverageRecord{
			ScenarioName:    combo.Scenario,
			Frequency:       freq,
			Season:          combo.Season,
			CurrentItems:    current,
			CoveragePercent: algo.CoveragePercent(current, e.FrequencyTarget(freq)),
			TotalOutfits:    combo.TotalOutfits,
			Bottleneck:      combo.Bottleneck,
		})
	}

	for _, season := range schema.CalendarSeasons {
		if !hasItemsFor(items, season) {
			continue
		}
		targets := e.OuterwearTargets(season)
		current := countOuterwear(items, season)
		data.Outerwear = append(data.Outerwear, schema.CoverageRecord{
			Season:          season,
			Category:        schema.OuterwearCategory,
			CurrentItems:    current,
			Targets:         &targets,
			CoveragePercent: algo.RawCoveragePercent(current, targets.Ideal),
			GapType:         algo.ClassifyOuterwear(current, targets),
		})
	}

	e.logger.Debug("coverage built",
		zap.Int("items", len(items)),
		zap.Int("scenarios", len(scenarios)),
		zap.Int("scenario_records", len(data.Scenarios)),
		zap.Int("outerwear_records", len(data.Outerwear)),
	)
	return data
}

// frequencyOf finds the frequency of the first scenario with the given name.
func frequencyOf(scenarios []schema.Scenario, name string) schema.Frequency {
	for _, s := range scenarios {
		if s.Name == name {
			return s.Frequency
		}
	}
	return schema.Weekly
}

func hasItemsFor(items []schema.WardrobeItem, season schema.Season) bool {
	for _, item := range items {
		if item.FitsSeason(season) {
			return true
		}
	}
	return false
}

func countOuterwear(items []schema.WardrobeItem, season schema.Season) int {
	n := 0
	for _, item := range items {
		if item.Category == schema.OuterwearCategory && item.FitsSeason(season) {
			n++
		}
	}
	return n
}
