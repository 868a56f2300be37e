package schema

import "strings"

// EnrichedGap adds presentation data to a ScoredGap.
type EnrichedGap struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoredGap
}

// GetPlainLabel returns a plain text label for a severity.
func GetPlainLabel(severity Severity) string {
	switch severity {
	case CriticalSeverity:
		return "Critical"
	case HighSeverity:
		return "High"
	case ModerateSeverity:
		return "Moderate"
	case LowSeverity:
		return "Low"
	default:
		return "None"
	}
}

// EnrichGaps adds rank and label to a list of scored gaps.
func EnrichGaps(gaps []ScoredGap) []EnrichedGap {
	output := make([]EnrichedGap, len(gaps))
	for i, g := range gaps {
		output[i] = EnrichedGap{
			Rank:      i + 1,
			Label:     GetPlainLabel(g.Severity),
			ScoredGap: g,
		}
	}
	return output
}

// EnrichedReport is the presentation form of an AnalysisReport.
type EnrichedReport struct {
	RunID             string           `json:"run_id,omitempty"`
	Name              string           `json:"name,omitempty"`
	Candidate         FormData         `json:"candidate"`
	ConservativeGoals bool             `json:"conservative_goals"`
	Gaps              []EnrichedGap    `json:"gaps"`
	Informational     []ScoredGap      `json:"informational,omitempty"`
	Duplicates        *DuplicateResult `json:"duplicates,omitempty"`
	RecommendedScore  int              `json:"recommended_score"`
}

// EnrichReport drops the raw coverage of a report and enriches its gaps.
func EnrichReport(r AnalysisReport) EnrichedReport {
	return EnrichedReport{
		RunID:             r.RunID,
		Name:              r.Name,
		Candidate:         r.Form,
		ConservativeGoals: r.ConservativeGoals,
		Gaps:              EnrichGaps(r.Gaps),
		Informational:     r.Informational,
		Duplicates:        r.Duplicates,
		RecommendedScore:  r.RecommendedScore,
	}
}

// Subject names what the gap is about: the scenario, or "Outerwear".
func (e EnrichedGap) Subject() string {
	if e.IsOuterwearGap {
		return "Outerwear"
	}
	return e.Scenario
}

// Classification returns the gap type for outerwear gaps and the lowercase severity otherwise.
func (e EnrichedGap) Classification() string {
	if e.IsOuterwearGap && e.GapType != "" {
		return string(e.GapType)
	}
	return strings.ToLower(GetPlainLabel(e.Severity))
}

// OutfitReport is the scenario x season outfit matrix of one profile.
type OutfitReport struct {
	Name         string              `json:"name"`
	Combinations []OutfitCombination `json:"combinations"`
}

// ScoringRow is one row of a scoring table, with the score under each policy.
type ScoringRow struct {
	Label        string `json:"label"`
	Standard     int    `json:"standard"`
	Conservative int    `json:"conservative"`
}

// ScoringTables holds both framings of the mandatory scoring tables.
type ScoringTables struct {
	GapType    []ScoringRow `json:"gap_type"`
	Percentage []ScoringRow `json:"percentage"`
}

// DuplicateReport pairs a profile's candidate with its duplicate check.
type DuplicateReport struct {
	Name      string          `json:"name"`
	Candidate FormData        `json:"candidate"`
	Result    DuplicateResult `json:"result"`
}
