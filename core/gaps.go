package core

import (
	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/schema"
	"go.uber.org/zap"
)

// IdentifySeasonalGaps finds the season/scenario combinations where the candidate could
// fill insufficient coverage. Outerwear candidates are judged per season against the
// outerwear targets; other candidates are judged per scenario and season against the
// coverage threshold. A candidate without valid seasons yields no gaps.
func (e *Engine) IdentifySeasonalGaps(coverage schema.CoverageData, form schema.FormData) []schema.GapRecord {
	seasons := schema.NormalizeSeasons(form.Seasons)
	if len(seasons) == 0 {
		e.logger.Debug("no candidate seasons, skipping gap identification")
		return nil
	}
	if form.IsOuterwear() {
		return e.outerwearGaps(coverage, seasons)
	}
	return e.regularGaps(coverage, form, seasons)
}

// ClassifySeasons returns the outerwear classification for every declared season,
// including satisfied and oversaturated ones. Seasons without coverage data are
// classified against their targets with no items. Non-outerwear candidates yield nothing.
func (e *Engine) ClassifySeasons(coverage schema.CoverageData, form schema.FormData) []schema.CoverageRecord {
	if !form.IsOuterwear() {
		return nil
	}
	var records []schema.CoverageRecord
	for _, season := range schema.NormalizeSeasons(form.Seasons) {
		rec, ok := coverage.OuterwearFor(season)
		if !ok {
			rec = schema.CoverageRecord{Season: season, Category: schema.OuterwearCategory}
		}
		targets := e.recordTargets(rec)
		rec.Targets = &targets
		rec.GapType = algo.ClassifyOuterwear(rec.CurrentItems, targets)
		rec.CoveragePercent = algo.RawCoveragePercent(rec.CurrentItems, targets.Ideal)
		records = append(records, rec)
	}
	return records
}

func (e *Engine) outerwearGaps(coverage schema.CoverageData, seasons []schema.Season) []schema.GapRecord {
	var gaps []schema.GapRecord
	for _, season := range seasons {
		rec, ok := coverage.OuterwearFor(season)
		if !ok {
			targets := e.OuterwearTargets(season)
			e.logger.Debug("no outerwear coverage, using season targets", zap.String("season", string(season)))
			gaps = append(gaps, schema.GapRecord{
				Season:          season,
				IsOuterwearGap:  true,
				Category:        schema.OuterwearCategory,
				CurrentItems:    0,
				CoveragePercent: 0,
				Targets:         &targets,
				GapType:         schema.CriticalGap,
				Severity:        schema.CriticalSeverity,
				IsCritical:      true,
			})
			continue
		}

		targets := e.recordTargets(rec)
		gapType := algo.ClassifyOuterwear(rec.CurrentItems, targets)
		if !gapType.IsGap() {
			e.logger.Debug("outerwear season covered",
				zap.String("season", string(season)),
				zap.String("gap_type", string(gapType)),
			)
			continue
		}
		gaps = append(gaps, schema.GapRecord{
			Season:          season,
			IsOuterwearGap:  true,
			Category:        schema.OuterwearCategory,
			CurrentItems:    rec.CurrentItems,
			CoveragePercent: algo.RawCoveragePercent(rec.CurrentItems, targets.Ideal),
			Targets:         &targets,
			GapType:         gapType,
			Severity:        algo.SeverityForGapType(gapType),
			IsCritical:      gapType == schema.CriticalGap,
		})
	}
	return gaps
}

func (e *Engine) regularGaps(coverage schema.CoverageData, form schema.FormData, seasons []schema.Season) []schema.GapRecord {
	wanted := make(map[schema.Season]struct{}, len(seasons))
	for _, s := range seasons {
		wanted[s] = struct{}{}
	}

	category := schema.Category(schema.NormalizeKey(form.Category))
	if parsed, ok := schema.ParseCategory(form.Category); ok {
		category = parsed
	}

	var gaps []schema.GapRecord
	for _, rec := range coverage.Scenarios {
		if !algo.HasGap(rec.CoveragePercent) {
			continue
		}
		if _, ok := wanted[rec.Season]; !ok {
			continue
		}
		if !algo.IsAppropriate(rec.ScenarioName, form.Category, form.Subcategory) {
			e.logger.Debug("candidate inappropriate for scenario",
				zap.String("scenario", rec.ScenarioName),
				zap.String("subcategory", form.Subcategory),
			)
			continue
		}
		severity := algo.SeverityForPercent(rec.CoveragePercent)
		gaps = append(gaps, schema.GapRecord{
			Season:          rec.Season,
			Scenario:        rec.ScenarioName,
			Category:        category,
			CurrentItems:    rec.CurrentItems,
			CoveragePercent: rec.CoveragePercent,
			Frequency:       rec.Frequency,
			Severity:        severity,
			IsCritical:      severity == schema.CriticalSeverity,
			TotalOutfits:    rec.TotalOutfits,
		})
	}
	return gaps
}

// recordTargets returns the normalized targets carried by a record, or the season targets.
func (e *Engine) recordTargets(rec schema.CoverageRecord) schema.Targets {
	if rec.Targets != nil {
		return algo.NormalizeTargets(*rec.Targets)
	}
	return e.OuterwearTargets(rec.Season)
}
