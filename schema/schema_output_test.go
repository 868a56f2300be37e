package schema_test

import (
	"testing"

	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		severity schema.Severity
		expected string
	}{
		{"Critical", schema.CriticalSeverity, "Critical"},
		{"High", schema.HighSeverity, "High"},
		{"Moderate", schema.ModerateSeverity, "Moderate"},
		{"Low", schema.LowSeverity, "Low"},
		{"None", schema.NoSeverity, "None"},
		{"Unknown", schema.Severity("weird"), "None"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.severity))
		})
	}
}

func TestEnrichGaps(t *testing.T) {
	gaps := []schema.ScoredGap{
		{GapRecord: schema.GapRecord{Season: schema.Winter, IsOuterwearGap: true, GapType: schema.CriticalGap, Severity: schema.CriticalSeverity}},
		{GapRecord: schema.GapRecord{Season: schema.Fall, Scenario: "Office", Severity: schema.ModerateSeverity}},
	}

	enriched := schema.EnrichGaps(gaps)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Critical", enriched[0].Label)
	assert.Equal(t, "Outerwear", enriched[0].Subject())
	assert.Equal(t, "critical", enriched[0].Classification())
	assert.Equal(t, "winter outerwear", enriched[0].GapRecord.Label())

	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Moderate", enriched[1].Label)
	assert.Equal(t, "Office", enriched[1].Subject())
	assert.Equal(t, "moderate", enriched[1].Classification())
	assert.Equal(t, "Office / fall", enriched[1].GapRecord.Label())
}

func TestEnrichReport(t *testing.T) {
	report := schema.AnalysisReport{
		RunID:            "run-1",
		Name:             "spring",
		Form:             schema.FormData{Category: "top", Color: "navy"},
		Coverage:         schema.CoverageData{Scenarios: []schema.CoverageRecord{{Season: schema.Fall, ScenarioName: "Office"}}},
		RecommendedScore: 7,
	}

	enriched := schema.EnrichReport(report)
	assert.Equal(t, "run-1", enriched.RunID)
	assert.Equal(t, "navy", enriched.Candidate.Color)
	assert.Equal(t, 7, enriched.RecommendedScore)
	assert.NotNil(t, enriched.Gaps, "gaps encode as an empty array")
	assert.Empty(t, enriched.Gaps)
}

func TestGapTypeRank(t *testing.T) {
	assert.Equal(t, 0, schema.CriticalGap.Rank())
	assert.Equal(t, 4, schema.OversaturatedGap.Rank())
	assert.Equal(t, len(schema.AllGapTypes), schema.GapType("unknown").Rank())

	assert.True(t, schema.ExpansionGap.IsGap())
	assert.False(t, schema.SatisfiedGap.IsGap())
	assert.False(t, schema.OversaturatedGap.IsGap())
}

func TestCoverageDataOuterwearFor(t *testing.T) {
	data := schema.CoverageData{
		Outerwear: []schema.CoverageRecord{{Season: schema.Winter, CurrentItems: 2}},
	}
	rec, ok := data.OuterwearFor(schema.Winter)
	assert.True(t, ok)
	assert.Equal(t, 2, rec.CurrentItems)
	assert.True(t, rec.IsOuterwear())

	_, ok = data.OuterwearFor(schema.Summer)
	assert.False(t, ok)
}
