package algo

import (
	"math"

	"github.com/huangsam/capsule/schema"
)

// CoverageThreshold is the regular-path coverage percentage below which a gap is flagged.
const CoverageThreshold = 60.0

// seasonalFallbackTargets are the outerwear targets used when a season has no coverage data.
var seasonalFallbackTargets = map[schema.Season]schema.Targets{
	schema.Summer: {Min: 1, Ideal: 2, Max: 3},
	schema.Winter: {Min: 2, Ideal: 3, Max: 4},
	schema.Spring: {Min: 3, Ideal: 4, Max: 5},
	schema.Fall:   {Min: 3, Ideal: 4, Max: 5},
}

var defaultFallbackTargets = schema.Targets{Min: 2, Ideal: 3, Max: 4}

// frequencyTargets are the ideal item counts for a scenario, driven by how often it happens.
var frequencyTargets = map[schema.Frequency]int{
	schema.Daily:   20,
	schema.Weekly:  12,
	schema.Monthly: 6,
	schema.Rarely:  3,
}

// SeasonalFallbackTargets returns the outerwear targets for a season.
// Unknown seasons get {2, 3, 4}.
func SeasonalFallbackTargets(season schema.Season) schema.Targets {
	if t, ok := seasonalFallbackTargets[season]; ok {
		return t
	}
	return defaultFallbackTargets
}

// FrequencyTarget returns the ideal item count for a scenario frequency.
// Unknown frequencies are treated as weekly.
func FrequencyTarget(freq schema.Frequency) int {
	if t, ok := frequencyTargets[freq]; ok {
		return t
	}
	return frequencyTargets[schema.Weekly]
}

// NormalizeTargets clamps negative values to zero and raises ideal and max
// so that min <= ideal <= max holds.
func NormalizeTargets(t schema.Targets) schema.Targets {
	t.Min = max(t.Min, 0)
	t.Ideal = max(t.Ideal, t.Min)
	t.Max = max(t.Max, t.Ideal)
	return t
}

// ClassifyOuterwear maps an outerwear count against seasonal targets to a gap type.
//
// A count of zero is always critical, even for a season whose minimum is zero.
func ClassifyOuterwear(current int, targets schema.Targets) schema.GapType {
	switch {
	case current <= 0:
		return schema.CriticalGap
	case current < targets.Min:
		return schema.CriticalGap
	case current < targets.Ideal:
		return schema.ImprovementGap
	case current < targets.Max:
		return schema.ExpansionGap
	case current == targets.Max:
		return schema.SatisfiedGap
	default:
		return schema.OversaturatedGap
	}
}

// CoveragePercent returns min(100, current/ideal*100). A non-positive ideal
// means nothing is required, which is full coverage.
func CoveragePercent(current, targetIdeal int) float64 {
	if targetIdeal <= 0 {
		return 100
	}
	if current <= 0 {
		return 0
	}
	return math.Min(100, float64(current)/float64(targetIdeal)*100)
}

// RawCoveragePercent is CoveragePercent without the upper clamp. It is used to
// present outerwear surplus on the percentage scale.
func RawCoveragePercent(current, targetIdeal int) float64 {
	if targetIdeal <= 0 {
		return 100
	}
	if current <= 0 {
		return 0
	}
	return float64(current) / float64(targetIdeal) * 100
}

// HasGap reports whether a regular-path coverage percentage is below CoverageThreshold.
func HasGap(percent float64) bool {
	return percent < CoverageThreshold
}

// SeverityForPercent maps a coverage percentage to a display severity.
// It is never used for scoring.
func SeverityForPercent(percent float64) schema.Severity {
	switch {
	case percent < 20:
		return schema.CriticalSeverity
	case percent < 40:
		return schema.HighSeverity
	case percent < 80:
		return schema.ModerateSeverity
	default:
		return schema.LowSeverity
	}
}

// SeverityForGapType maps an outerwear gap type to a display severity.
func SeverityForGapType(gapType schema.GapType) schema.Severity {
	switch gapType {
	case schema.CriticalGap:
		return schema.CriticalSeverity
	case schema.ImprovementGap:
		return schema.HighSeverity
	case schema.ExpansionGap:
		return schema.ModerateSeverity
	case schema.SatisfiedGap, schema.OversaturatedGap:
		return schema.LowSeverity
	default:
		return schema.NoSeverity
	}
}
