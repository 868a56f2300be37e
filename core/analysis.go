package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NamedInput pairs an analysis input with the name of the profile it came from.
type NamedInput struct {
	Name  string
	Input schema.AnalysisInput
}

// Analyze runs the full gap analysis for one request. It never fails: missing
// scenarios or items produce a report without gaps.
func (e *Engine) Analyze(input schema.AnalysisInput) schema.AnalysisReport {
	in := e.sanitizeInput(input)

	report := schema.AnalysisReport{
		Form:              in.Form,
		ConservativeGoals: algo.IsConservative(in.Goals),
		Gaps:              []schema.ScoredGap{},
	}

	// --- 1. Degrade gracefully on absent data ---
	if len(in.Scenarios) == 0 || len(in.Items) == 0 {
		e.logger.Debug("skipping gap analysis",
			zap.Int("items", len(in.Items)),
			zap.Int("scenarios", len(in.Scenarios)),
		)
		dup := algo.DetectDuplicates(in.Form.Attributes(), in.Items, false)
		report.Duplicates = &dup
		return report
	}

	// --- 2. Coverage and gaps ---
	report.Coverage = e.BuildCoverage(in.Items, in.Scenarios)
	for _, gap := range e.IdentifySeasonalGaps(report.Coverage, in.Form) {
		report.Gaps = append(report.Gaps, schema.ScoredGap{
			GapRecord:   gap,
			Instruction: algo.ResolveInstruction(gap, report.ConservativeGoals),
		})
	}
	report.Gaps = algo.RankGaps(report.Gaps, 0)

	// --- 3. Informational outerwear classifications ---
	for _, rec := range e.ClassifySeasons(report.Coverage, in.Form) {
		if rec.GapType.IsGap() {
			continue
		}
		gap := schema.GapRecord{
			Season:          rec.Season,
			IsOuterwearGap:  true,
			Category:        schema.OuterwearCategory,
			CurrentItems:    rec.CurrentItems,
			CoveragePercent: rec.CoveragePercent,
			Targets:         rec.Targets,
			GapType:         rec.GapType,
			Severity:        algo.SeverityForGapType(rec.GapType),
		}
		report.Informational = append(report.Informational, schema.ScoredGap{
			GapRecord:   gap,
			Instruction: algo.ResolveInstruction(gap, report.ConservativeGoals),
		})
	}

	// --- 4. Duplicates and final score ---
	dup := algo.DetectDuplicates(in.Form.Attributes(), in.Items, report.HasGaps())
	report.Duplicates = &dup
	report.RecommendedScore = recommendedScore(report)

	e.logger.Debug("analysis complete",
		zap.Int("gaps", len(report.Gaps)),
		zap.Int("informational", len(report.Informational)),
		zap.Bool("conservative", report.ConservativeGoals),
		zap.Int("recommended_score", report.RecommendedScore),
	)
	return report
}

// AnalyzeBatch analyzes many inputs concurrently, bounded by workers.
// Reports keep the order of the inputs and each one gets a fresh run ID.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []NamedInput, workers int) ([]schema.AnalysisReport, error) {
	reports := make([]schema.AnalysisReport, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report := e.Analyze(in.Input)
			report.Name = in.Name
			report.RunID = uuid.NewString()
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis interrupted: %w", err)
	}
	return reports, nil
}

// recommendedScore is the highest mandatory score among the gaps. Without gaps the
// informational classifications decide.
func recommendedScore(report schema.AnalysisReport) int {
	best := 0
	source := report.Gaps
	if len(source) == 0 {
		source = report.Informational
	}
	for _, g := range source {
		best = max(best, g.Instruction.MandatoryScore)
	}
	return best
}

// sanitizeInput validates the request once so the algorithms can trust their inputs.
// Unknown categories drop the item, unknown seasons are ignored and scenarios
// without a name are dropped.
func (e *Engine) sanitizeInput(input schema.AnalysisInput) schema.AnalysisInput {
	out := schema.AnalysisInput{
		Form:  input.Form,
		Goals: input.Goals,
		Items: make([]schema.WardrobeItem, 0, len(input.Items)),
	}

	for _, item := range input.Items {
		category, ok := schema.ParseCategory(string(item.Category))
		if !ok {
			e.logger.Debug("dropping item with unknown category",
				zap.String("id", item.ID),
				zap.String("category", string(item.Category)),
			)
			continue
		}
		// "jumpsuit" given as the category names the subcategory too
		if item.Subcategory == "" && schema.NormalizeKey(string(item.Category)) == schema.JumpsuitSubcategory {
			item.Subcategory = schema.JumpsuitSubcategory
		}
		item.Category = category
		seasons := make([]schema.Season, 0, len(item.Seasons))
		for _, s := range item.Seasons {
			if parsed, ok := schema.ParseSeason(string(s)); ok {
				seasons = append(seasons, parsed)
			}
		}
		item.Seasons = seasons
		out.Items = append(out.Items, item)
	}

	for _, scenario := range input.Scenarios {
		if schema.NormalizeKey(scenario.Name) == "" {
			continue
		}
		scenario.Frequency = schema.ParseFrequency(string(scenario.Frequency))
		out.Scenarios = append(out.Scenarios, scenario)
	}
	return out
}

// trackReport records a finished report in the analysis store, if one is configured.
// Tracking failures are logged and never fail the analysis.
func trackReport(store contract.AnalysisStore, report schema.AnalysisReport, startTime time.Time, configParams map[string]any) {
	if store == nil {
		return
	}

	analysisID, err := store.BeginAnalysis(startTime, report.RunID, report.Name, configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return
	}
	if analysisID <= 0 {
		return
	}

	for _, gap := range report.Gaps {
		if err := store.RecordGapScore(analysisID, gap); err != nil {
			logTrackingError("RecordGapScore", gap.Label(), err)
		}
	}

	if err := store.EndAnalysis(analysisID, time.Now(), len(report.Gaps), report.ConservativeGoals); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// logTrackingError logs database tracking errors to stderr without disrupting analysis.
func logTrackingError(operation, subject string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, subject), err)
}
