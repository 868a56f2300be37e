package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/capsule/internal/iocache"
	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func blouseInput() schema.AnalysisInput {
	return schema.AnalysisInput{
		Items:     officeWardrobe(),
		Scenarios: officeScenarios(),
		Form:      schema.FormData{Category: "top", Subcategory: "blouse", Color: "white", Seasons: []string{"fall"}},
	}
}

func winterCoatInput(goals ...string) schema.AnalysisInput {
	items := officeWardrobe()
	for range 4 {
		items = append(items, schema.WardrobeItem{
			Category: schema.OuterwearCategory, Subcategory: "coat", Color: "camel",
			Seasons: []schema.Season{schema.Winter},
		})
	}
	return schema.AnalysisInput{
		Items:     items,
		Scenarios: officeScenarios(),
		Form:      schema.FormData{Category: "outerwear", Subcategory: "coat", Color: "navy", Seasons: []string{"winter"}},
		Goals:     goals,
	}
}

func TestAnalyzeRegularGaps(t *testing.T) {
	report := NewEngine().Analyze(blouseInput())

	assert.False(t, report.ConservativeGoals)
	require.Len(t, report.Gaps, 2)

	// ranked by mandatory score
	hiking, office := report.Gaps[0], report.Gaps[1]
	assert.Equal(t, "Hiking", hiking.Scenario)
	assert.Equal(t, schema.CriticalSeverity, hiking.Severity)
	assert.Equal(t, 10, hiking.Instruction.MandatoryScore)
	assert.Equal(t, "percentage", hiking.Instruction.Framing)

	assert.Equal(t, "Office Work", office.Scenario)
	assert.Equal(t, schema.Fall, office.Season)
	assert.Equal(t, schema.HighSeverity, office.Severity)
	assert.Equal(t, 9, office.Instruction.MandatoryScore)
	assert.Contains(t, office.Instruction.RationaleText, "Office Work / fall is covered at 33%")

	assert.Empty(t, report.Informational)
	require.NotNil(t, report.Duplicates)
	assert.False(t, report.Duplicates.Found)
	require.NotNil(t, report.Duplicates.RecommendedBand, "a gap filler gets the 6-8 band")
	assert.Equal(t, schema.ScoreBand{Min: 6, Max: 8}, *report.Duplicates.RecommendedBand)
	assert.Equal(t, 10, report.RecommendedScore)
	assert.Len(t, report.Coverage.Scenarios, 8)
}

func TestAnalyzeHeelsSkipHiking(t *testing.T) {
	input := blouseInput()
	input.Form = schema.FormData{Category: "footwear", Subcategory: "heels", Color: "black", Seasons: []string{"fall"}}

	report := NewEngine().Analyze(input)
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "Office Work", report.Gaps[0].Scenario)
}

func TestAnalyzeOversaturatedOuterwear(t *testing.T) {
	tests := []struct {
		name         string
		goals        []string
		conservative bool
		score        int
	}{
		{name: "standard", score: 3},
		{name: "conservative", goals: []string{"declutter-downsize"}, conservative: true, score: 2},
		{name: "free text goal", goals: []string{"I want a Minimalist closet"}, conservative: true, score: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewEngine().Analyze(winterCoatInput(tt.goals...))

			assert.Equal(t, tt.conservative, report.ConservativeGoals)
			assert.Empty(t, report.Gaps)
			require.Len(t, report.Informational, 1)
			info := report.Informational[0]
			assert.Equal(t, schema.Winter, info.Season)
			assert.Equal(t, 5, info.CurrentItems)
			assert.Equal(t, schema.OversaturatedGap, info.GapType)
			assert.Equal(t, schema.LowSeverity, info.Severity)
			assert.Equal(t, tt.score, info.Instruction.MandatoryScore)
			assert.Equal(t, tt.score, report.RecommendedScore)

			require.NotNil(t, report.Duplicates)
			assert.False(t, report.Duplicates.Found)
			assert.Nil(t, report.Duplicates.RecommendedBand)
		})
	}
}

func TestAnalyzeOuterwearGap(t *testing.T) {
	input := blouseInput()
	input.Form = schema.FormData{Category: "outerwear", Subcategory: "parka", Color: "black", Seasons: []string{"winter", "summer"}}

	report := NewEngine().Analyze(input)
	require.Len(t, report.Gaps, 2)
	for _, g := range report.Gaps {
		assert.True(t, g.IsOuterwearGap)
		assert.Equal(t, schema.CriticalGap, g.GapType)
		assert.Equal(t, 10, g.Instruction.MandatoryScore)
		assert.Equal(t, "gap_type", g.Instruction.Framing)
	}
	// summer has no outerwear at all, so it ranks first on coverage
	assert.Equal(t, schema.Summer, report.Gaps[0].Season)
	assert.Equal(t, schema.Winter, report.Gaps[1].Season)
	assert.Equal(t, 9, report.Gaps[1].Instruction.AlternativeScore)
}

func TestAnalyzeDuplicate(t *testing.T) {
	input := schema.AnalysisInput{
		Items: []schema.WardrobeItem{
			{ID: "a", Category: "top", Color: "black", Subcategory: "t-shirt"},
			{ID: "b", Category: "top", Color: "white", Subcategory: "t-shirt"},
		},
		Form: schema.FormData{Category: "top", Color: "black", Subcategory: "t-shirt", Seasons: []string{"summer"}},
	}

	report := NewEngine().Analyze(input)
	assert.Empty(t, report.Gaps)
	require.NotNil(t, report.Duplicates)
	assert.True(t, report.Duplicates.Found)
	assert.Equal(t, 1, report.Duplicates.Count)
	require.NotNil(t, report.Duplicates.RecommendedBand)
	assert.Equal(t, schema.ScoreBand{Min: 1, Max: 3}, *report.Duplicates.RecommendedBand)
}

func TestAnalyzeDegradesOnMissingData(t *testing.T) {
	tests := []struct {
		name  string
		input schema.AnalysisInput
	}{
		{name: "empty", input: schema.AnalysisInput{}},
		{name: "no scenarios", input: schema.AnalysisInput{Items: officeWardrobe(), Form: schema.FormData{Category: "top", Seasons: []string{"fall"}}}},
		{name: "no items", input: schema.AnalysisInput{Scenarios: officeScenarios(), Form: schema.FormData{Category: "top", Seasons: []string{"fall"}}}},
		{name: "only unknown categories", input: schema.AnalysisInput{
			Items:     []schema.WardrobeItem{{Category: "gadget"}},
			Scenarios: officeScenarios(),
			Form:      schema.FormData{Category: "top", Seasons: []string{"fall"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewEngine().Analyze(tt.input)
			assert.NotNil(t, report.Gaps)
			assert.Empty(t, report.Gaps)
			assert.Equal(t, 0, report.RecommendedScore)
			require.NotNil(t, report.Duplicates)
			assert.Nil(t, report.Duplicates.RecommendedBand)
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	input := schema.AnalysisInput{
		Items: []schema.WardrobeItem{
			{ID: "a", Category: "Tops", Seasons: []schema.Season{"Autumn", "monsoon"}},
			{ID: "b", Category: "jumpsuit"},
			{ID: "c", Category: "gadget"},
			{ID: "d", Category: "dress", Subcategory: "wrap dress"},
		},
		Scenarios: []schema.Scenario{
			{Name: "Office", Frequency: "DAILY"},
			{Name: "  "},
			{Name: "Party", Frequency: "sometimes"},
		},
		Goals: []string{"save-money"},
	}

	out := NewEngine().sanitizeInput(input)
	require.Len(t, out.Items, 3)
	assert.Equal(t, schema.TopCategory, out.Items[0].Category)
	assert.Equal(t, []schema.Season{schema.Fall}, out.Items[0].Seasons)
	assert.Equal(t, schema.OnePieceCategory, out.Items[1].Category)
	assert.Equal(t, schema.JumpsuitSubcategory, out.Items[1].Subcategory)
	assert.True(t, out.Items[1].IsJumpsuit())
	assert.Equal(t, "wrap dress", out.Items[2].Subcategory)
	assert.True(t, out.Items[2].IsDress())

	require.Len(t, out.Scenarios, 2)
	assert.Equal(t, schema.Daily, out.Scenarios[0].Frequency)
	assert.Equal(t, schema.Weekly, out.Scenarios[1].Frequency)
	assert.Equal(t, []string{"save-money"}, out.Goals)
}

func TestAnalyzeBatch(t *testing.T) {
	inputs := []NamedInput{
		{Name: "blouse", Input: blouseInput()},
		{Name: "coat", Input: winterCoatInput()},
		{Name: "empty"},
	}

	reports, err := NewEngine().AnalyzeBatch(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	seen := map[string]bool{}
	for i, r := range reports {
		assert.Equal(t, inputs[i].Name, r.Name)
		assert.Len(t, r.RunID, 36)
		assert.False(t, seen[r.RunID], "run IDs are unique")
		seen[r.RunID] = true
	}
	assert.Len(t, reports[0].Gaps, 2)
	assert.Len(t, reports[1].Informational, 1)
	assert.Empty(t, reports[2].Gaps)
}

func TestAnalyzeBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().AnalyzeBatch(ctx, []NamedInput{{Name: "a", Input: blouseInput()}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "batch analysis interrupted")
}

func TestRecommendedScore(t *testing.T) {
	scored := func(score int) schema.ScoredGap {
		return schema.ScoredGap{Instruction: schema.ScoringInstruction{MandatoryScore: score}}
	}
	tests := []struct {
		name   string
		report schema.AnalysisReport
		want   int
	}{
		{name: "nothing", report: schema.AnalysisReport{}, want: 0},
		{name: "highest gap", report: schema.AnalysisReport{Gaps: []schema.ScoredGap{scored(8), scored(10), scored(9)}}, want: 10},
		{name: "gaps win over informational", report: schema.AnalysisReport{
			Gaps:          []schema.ScoredGap{scored(8)},
			Informational: []schema.ScoredGap{scored(9)},
		}, want: 8},
		{name: "informational only", report: schema.AnalysisReport{Informational: []schema.ScoredGap{scored(3), scored(6)}}, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendedScore(tt.report))
		})
	}
}

func TestTrackReport(t *testing.T) {
	report := NewEngine().Analyze(blouseInput())
	report.Name = "spring"
	report.RunID = "run-1"
	start := time.Now()
	params := map[string]any{"workers": 1}

	t.Run("records every gap", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", start, "run-1", "spring", params).Return(int64(7), nil)
		store.On("RecordGapScore", int64(7), mock.AnythingOfType("schema.ScoredGap")).Return(nil).Times(2)
		store.On("EndAnalysis", int64(7), mock.AnythingOfType("time.Time"), 2, false).Return(nil)

		trackReport(store, report, start, params)
		store.AssertExpectations(t)
	})

	t.Run("record failures do not stop tracking", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", start, "run-1", "spring", params).Return(int64(7), nil)
		store.On("RecordGapScore", int64(7), mock.Anything).Return(errors.New("disk full"))
		store.On("EndAnalysis", int64(7), mock.Anything, 2, false).Return(errors.New("disk full"))

		trackReport(store, report, start, params)
		store.AssertNumberOfCalls(t, "RecordGapScore", 2)
		store.AssertCalled(t, "EndAnalysis", int64(7), mock.Anything, 2, false)
	})

	t.Run("begin failure skips the rest", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", start, "run-1", "spring", params).Return(int64(0), errors.New("offline"))

		trackReport(store, report, start, params)
		store.AssertNotCalled(t, "RecordGapScore", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disabled store", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", start, "run-1", "spring", params).Return(int64(0), nil)

		trackReport(store, report, start, params)
		store.AssertNotCalled(t, "RecordGapScore", mock.Anything, mock.Anything)
	})

	t.Run("nil store", func(t *testing.T) {
		assert.NotPanics(t, func() { trackReport(nil, report, start, params) })
	})
}
