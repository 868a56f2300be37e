package algo

import (
	"slices"
	"strings"

	"github.com/huangsam/capsule/schema"
)

// seasonOrder returns the calendar position of a season for stable ordering.
func seasonOrder(s schema.Season) int {
	if i := slices.Index(schema.CalendarSeasons, s); i >= 0 {
		return i
	}
	return len(schema.CalendarSeasons)
}

// RankGaps sorts scored gaps by mandatory score in descending order, breaking ties by
// coverage percentage ascending, then by season and scenario. If limit is positive and
// smaller than the number of gaps, only the top 'limit' gaps are returned.
func RankGaps(gaps []schema.ScoredGap, limit int) []schema.ScoredGap {
	slices.SortStableFunc(gaps, func(a, b schema.ScoredGap) int {
		if a.Instruction.MandatoryScore != b.Instruction.MandatoryScore {
			return b.Instruction.MandatoryScore - a.Instruction.MandatoryScore
		}
		if a.CoveragePercent != b.CoveragePercent {
			if a.CoveragePercent < b.CoveragePercent {
				return -1
			}
			return 1
		}
		if sa, sb := seasonOrder(a.Season), seasonOrder(b.Season); sa != sb {
			return sa - sb
		}
		return strings.Compare(a.Scenario, b.Scenario)
	})
	if limit > 0 && len(gaps) > limit {
		return gaps[:limit]
	}
	return gaps
}
