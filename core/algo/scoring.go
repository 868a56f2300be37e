package algo

import (
	"fmt"

	"github.com/huangsam/capsule/schema"
)

// Framing names the table a mandatory score was read from.
const (
	GapTypeFraming    = "gap_type"
	PercentageFraming = "percentage"
)

// scoreTable holds one score per gap type, ordered like schema.AllGapTypes.
// The percentage table reuses the same five slots for its bands.
type scoreTable [5]int

var (
	standardTable     = scoreTable{10, 9, 8, 6, 3}
	conservativeTable = scoreTable{10, 9, 6, 4, 2}
)

// percentBands are the inclusive upper bounds of the first four percentage bands.
// Anything above the last bound lands in the fifth band.
var percentBands = [4]float64{20, 50, 80, 100}

func tableFor(conservative bool) scoreTable {
	if conservative {
		return conservativeTable
	}
	return standardTable
}

// ScoreForGapType returns the mandatory score for an outerwear gap type.
// Unknown gap types score as satisfied.
func ScoreForGapType(gapType schema.GapType, conservative bool) int {
	rank := gapType.Rank()
	if rank >= len(schema.AllGapTypes) {
		rank = schema.SatisfiedGap.Rank()
	}
	return tableFor(conservative)[rank]
}

// ScoreForPercent returns the mandatory score for a coverage percentage.
// Bands are 0-20, 21-50, 51-80, 81-100 and above 100, with inclusive upper bounds.
func ScoreForPercent(percent float64, conservative bool) int {
	return tableFor(conservative)[PercentBand(percent)]
}

// PercentBand returns the 0-based band index for a coverage percentage.
func PercentBand(percent float64) int {
	for i, bound := range percentBands {
		if percent <= bound {
			return i
		}
	}
	return len(percentBands)
}

// PercentBandLabel describes a band index, e.g. "21-50%".
func PercentBandLabel(band int) string {
	switch band {
	case 0:
		return "0-20%"
	case 1:
		return "21-50%"
	case 2:
		return "51-80%"
	case 3:
		return "81-100%"
	default:
		return ">100%"
	}
}

// ResolveInstruction turns a gap into its mandatory scoring instruction.
// Outerwear gaps are scored by gap type and regular gaps by coverage percentage;
// the other framing is reported alongside when it exists.
func ResolveInstruction(gap schema.GapRecord, conservative bool) schema.ScoringInstruction {
	policy := "standard"
	if conservative {
		policy = "conservative"
	}

	if gap.IsOuterwearGap && gap.GapType != "" {
		score := ScoreForGapType(gap.GapType, conservative)
		return schema.ScoringInstruction{
			MandatoryScore:   score,
			AlternativeScore: ScoreForPercent(gap.CoveragePercent, conservative),
			Framing:          GapTypeFraming,
			RationaleText: fmt.Sprintf(
				"%s is a %s gap with %d of %d ideal items; the %s policy requires a score of %d",
				gap.Label(), gap.GapType, gap.CurrentItems, idealOf(gap.Targets), policy, score,
			),
		}
	}

	score := ScoreForPercent(gap.CoveragePercent, conservative)
	return schema.ScoringInstruction{
		MandatoryScore: score,
		Framing:        PercentageFraming,
		RationaleText: fmt.Sprintf(
			"%s is covered at %.0f%% (%s band); the %s policy requires a score of %d",
			gap.Label(), gap.CoveragePercent, PercentBandLabel(PercentBand(gap.CoveragePercent)), policy, score,
		),
	}
}

func idealOf(t *schema.Targets) int {
	if t == nil {
		return 0
	}
	return t.Ideal
}

// BuildScoringTables lists both scoring tables under both policies, in table order.
func BuildScoringTables() schema.ScoringTables {
	var tables schema.ScoringTables
	for _, gt := range schema.AllGapTypes {
		tables.GapType = append(tables.GapType, schema.ScoringRow{
			Label:        string(gt),
			Standard:     ScoreForGapType(gt, false),
			Conservative: ScoreForGapType(gt, true),
		})
	}
	for band := 0; band <= len(percentBands); band++ {
		tables.Percentage = append(tables.Percentage, schema.ScoringRow{
			Label:        PercentBandLabel(band),
			Standard:     standardTable[band],
			Conservative: conservativeTable[band],
		})
	}
	return tables
}
