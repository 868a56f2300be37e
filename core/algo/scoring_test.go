package algo

import (
	"testing"

	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
)

func TestScoreForGapType(t *testing.T) {
	tests := []struct {
		gapType      schema.GapType
		standard     int
		conservative int
	}{
		{schema.CriticalGap, 10, 10},
		{schema.ImprovementGap, 9, 9},
		{schema.ExpansionGap, 8, 6},
		{schema.SatisfiedGap, 6, 4},
		{schema.OversaturatedGap, 3, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.gapType), func(t *testing.T) {
			assert.Equal(t, tt.standard, ScoreForGapType(tt.gapType, false))
			assert.Equal(t, tt.conservative, ScoreForGapType(tt.gapType, true))
		})
	}
}

func TestScoreForPercent(t *testing.T) {
	tests := []struct {
		percent      float64
		standard     int
		conservative int
	}{
		{0, 10, 10},
		{20, 10, 10},
		{20.5, 9, 9},
		{50, 9, 9},
		{55, 8, 6},
		{80, 8, 6},
		{81, 6, 4},
		{100, 6, 4},
		{100.1, 3, 2},
		{250, 3, 2},
		{-5, 10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.standard, ScoreForPercent(tt.percent, false), "percent=%v", tt.percent)
		assert.Equal(t, tt.conservative, ScoreForPercent(tt.percent, true), "percent=%v", tt.percent)
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	for _, gt := range schema.AllGapTypes {
		for _, conservative := range []bool{false, true} {
			assert.Equal(t, ScoreForGapType(gt, conservative), ScoreForGapType(gt, conservative))
		}
	}
	for p := 0.0; p <= 150; p += 7.5 {
		assert.Equal(t, ScoreForPercent(p, true), ScoreForPercent(p, true))
	}
}

func TestPercentBandLabel(t *testing.T) {
	assert.Equal(t, "0-20%", PercentBandLabel(PercentBand(12)))
	assert.Equal(t, "21-50%", PercentBandLabel(PercentBand(33)))
	assert.Equal(t, "51-80%", PercentBandLabel(PercentBand(55)))
	assert.Equal(t, "81-100%", PercentBandLabel(PercentBand(100)))
	assert.Equal(t, ">100%", PercentBandLabel(PercentBand(101)))
}

func TestBuildScoringTables(t *testing.T) {
	tables := BuildScoringTables()
	assert.Len(t, tables.GapType, 5)
	assert.Len(t, tables.Percentage, 5)

	assert.Equal(t, schema.ScoringRow{Label: "critical", Standard: 10, Conservative: 10}, tables.GapType[0])
	assert.Equal(t, schema.ScoringRow{Label: "oversaturated", Standard: 3, Conservative: 2}, tables.GapType[4])
	assert.Equal(t, schema.ScoringRow{Label: "51-80%", Standard: 8, Conservative: 6}, tables.Percentage[2])
	assert.Equal(t, schema.ScoringRow{Label: ">100%", Standard: 3, Conservative: 2}, tables.Percentage[4])
}

func TestResolveInstruction(t *testing.T) {
	t.Run("outerwear uses gap type", func(t *testing.T) {
		gap := schema.GapRecord{
			Season:          schema.Winter,
			IsOuterwearGap:  true,
			CurrentItems:    5,
			CoveragePercent: RawCoveragePercent(5, 3),
			Targets:         &schema.Targets{Min: 2, Ideal: 3, Max: 4},
			GapType:         schema.OversaturatedGap,
		}
		std := ResolveInstruction(gap, false)
		assert.Equal(t, 3, std.MandatoryScore)
		assert.Equal(t, 3, std.AlternativeScore)
		assert.Equal(t, GapTypeFraming, std.Framing)
		assert.Contains(t, std.RationaleText, "winter outerwear")
		assert.Contains(t, std.RationaleText, "oversaturated")

		cons := ResolveInstruction(gap, true)
		assert.Equal(t, 2, cons.MandatoryScore)
		assert.Contains(t, cons.RationaleText, "conservative")
	})

	t.Run("regular uses percentage", func(t *testing.T) {
		gap := schema.GapRecord{Season: schema.Fall, Scenario: "Office", CoveragePercent: 55}
		std := ResolveInstruction(gap, false)
		assert.Equal(t, 8, std.MandatoryScore)
		assert.Zero(t, std.AlternativeScore)
		assert.Equal(t, PercentageFraming, std.Framing)
		assert.Contains(t, std.RationaleText, "Office / fall")
		assert.Contains(t, std.RationaleText, "51-80%")

		assert.Equal(t, 6, ResolveInstruction(gap, true).MandatoryScore)
	})

	t.Run("outerwear without targets", func(t *testing.T) {
		gap := schema.GapRecord{Season: schema.Summer, IsOuterwearGap: true, GapType: schema.CriticalGap}
		assert.Equal(t, 10, ResolveInstruction(gap, false).MandatoryScore)
	})
}

func TestIsConservative(t *testing.T) {
	tests := []struct {
		name  string
		goals []string
		want  bool
	}{
		{"nil", nil, false},
		{"unrelated", []string{"build-capsule", "try new styles"}, false},
		{"slug", []string{"save-money"}, true},
		{"slug with case", []string{" Declutter-Downsize "}, true},
		{"free text minimalist", []string{"I want a Minimalist closet"}, true},
		{"free text buy less", []string{"buy   less, wear more"}, true},
		{"free text optimize", []string{"Optimize what I own"}, true},
		{"blank entries", []string{"", "  "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConservative(tt.goals))
		})
	}
}
