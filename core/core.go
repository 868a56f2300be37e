// Package core has core logic for coverage analysis, gap identification and scoring.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/outwriter"
	"github.com/huangsam/capsule/internal/profile"
	"github.com/huangsam/capsule/internal/prompt"
	"github.com/huangsam/capsule/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteGaps analyzes every configured profile, records the runs and prints the ranked gaps.
// It serves as the main entry point for the 'gaps' mode.
func ExecuteGaps(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return executeGaps(ctx, cfg, mgr, profile.NewLoader())
}

func executeGaps(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, source contract.ProfileSource) error {
	start := time.Now()
	reports, err := AnalyzeInputs(ctx, cfg, mgr, loadInputs(ctx, cfg, source))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGaps(reports, cfg, time.Since(start))
}

// AnalyzeInputs analyzes already loaded inputs concurrently, records every report in the
// analysis store and ranks each gap list. The full list is recorded before the limit applies.
func AnalyzeInputs(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, inputs []NamedInput) ([]schema.AnalysisReport, error) {
	start := time.Now()
	engine := NewEngineFromConfig(cfg, loggerFromContext(ctx))
	reports, err := engine.AnalyzeBatch(ctx, inputs, cfg.Workers)
	if err != nil {
		return nil, err
	}

	store := analysisStoreOf(mgr)
	params := configParams(cfg)
	for i := range reports {
		trackReport(store, reports[i], start, params)
		reports[i].Gaps = algo.RankGaps(reports[i].Gaps, cfg.Limit)
	}
	return reports, nil
}

// ExecuteOutfits prints the scenario x season outfit matrix of every configured profile.
func ExecuteOutfits(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return executeOutfits(ctx, cfg, profile.NewLoader())
}

func executeOutfits(ctx context.Context, cfg *contract.Config, source contract.ProfileSource) error {
	engine := NewEngineFromConfig(cfg, loggerFromContext(ctx))
	var reports []schema.OutfitReport
	for _, in := range loadInputs(ctx, cfg, source) {
		reports = append(reports, schema.OutfitReport{
			Name:         in.Name,
			Combinations: engine.Outfits(in.Input),
		})
	}
	return outwriter.NewOutWriter().WriteOutfits(reports, cfg)
}

// ExecuteDuplicates checks the candidate of every configured profile against its wardrobe.
func ExecuteDuplicates(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return executeDuplicates(ctx, cfg, profile.NewLoader())
}

func executeDuplicates(ctx context.Context, cfg *contract.Config, source contract.ProfileSource) error {
	reports, err := analyzeProfiles(ctx, cfg, source)
	if err != nil {
		return err
	}
	results := make([]schema.DuplicateReport, 0, len(reports))
	for _, r := range reports {
		results = append(results, DuplicateReportOf(r))
	}
	return outwriter.NewOutWriter().WriteDuplicates(results, cfg)
}

// DuplicateReportOf extracts the duplicate check of an analysis report.
func DuplicateReportOf(r schema.AnalysisReport) schema.DuplicateReport {
	dup := schema.DuplicateReport{Name: r.Name, Candidate: r.Form}
	if r.Duplicates != nil {
		dup.Result = *r.Duplicates
	}
	return dup
}

// ExecuteScoring displays both mandatory scoring tables.
// This is a static display that does not require a wardrobe.
func ExecuteScoring(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteScoring(algo.BuildScoringTables(), cfg)
}

// ExecutePrompt renders the instruction block of every configured profile.
func ExecutePrompt(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return executePrompt(ctx, cfg, profile.NewLoader(), nil)
}

// NewAdviseExecutor returns an executor that sends each rendered prompt to the advisor.
// When the advisor is missing or fails, the prompt itself is printed instead.
func NewAdviseExecutor(advisor contract.Advisor) ExecutorFunc {
	return func(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
		if advisor == nil {
			contract.LogWarn("Advisor unavailable, printing prompts instead", fmt.Errorf("no advisor configured"))
		}
		return executePrompt(ctx, cfg, profile.NewLoader(), advisor)
	}
}

func executePrompt(ctx context.Context, cfg *contract.Config, source contract.ProfileSource, advisor contract.Advisor) error {
	reports, err := analyzeProfiles(ctx, cfg, source)
	if err != nil {
		return err
	}

	docs := make([]outwriter.TextDocument, 0, len(reports))
	for _, r := range reports {
		text, err := prompt.Render(r)
		if err != nil {
			return fmt.Errorf("failed to render prompt for %s: %w", r.Name, err)
		}
		if advisor != nil && text != "" {
			advice, err := advisor.Advise(ctx, text)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Advisor failed for %s, printing prompt instead", r.Name), err)
			} else {
				text = advice
			}
		}
		docs = append(docs, outwriter.TextDocument{Name: r.Name, Text: strings.TrimSpace(text)})
	}
	return outwriter.NewOutWriter().WriteText(docs, cfg)
}

// analyzeProfiles loads and analyzes every configured profile concurrently.
func analyzeProfiles(ctx context.Context, cfg *contract.Config, source contract.ProfileSource) ([]schema.AnalysisReport, error) {
	engine := NewEngineFromConfig(cfg, loggerFromContext(ctx))
	return engine.AnalyzeBatch(ctx, loadInputs(ctx, cfg, source), cfg.Workers)
}

// loadInputs loads every configured profile and applies the flag overrides.
// A profile that fails to load is analyzed as an empty wardrobe.
func loadInputs(ctx context.Context, cfg *contract.Config, source contract.ProfileSource) []NamedInput {
	inputs := make([]NamedInput, 0, len(cfg.Profiles))
	for _, location := range cfg.Profiles {
		input, err := source.Load(ctx, location)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to load profile %s, using an empty wardrobe", location), err)
			input = schema.AnalysisInput{}
		}
		input.Form = cfg.ApplyCandidate(input.Form)
		input.Goals = cfg.ApplyGoals(input.Goals)
		inputs = append(inputs, NamedInput{Name: profile.Name(location), Input: input})
	}
	return inputs
}

// analysisStoreOf returns the configured analysis store, or nil when tracking is off.
func analysisStoreOf(mgr contract.StoreManager) contract.AnalysisStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetAnalysisStore()
}

// configParams captures the settings that shaped a run for the analysis store.
func configParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"workers":   cfg.Workers,
		"limit":     cfg.Limit,
		"profiles":  cfg.Profiles,
		"output":    string(cfg.Output),
		"precision": cfg.Precision,
	}
	if len(cfg.Goals) > 0 {
		params["goals"] = cfg.Goals
	}
	if cfg.Candidate.Category != "" {
		params["category"] = cfg.Candidate.Category
	}
	if len(cfg.Candidate.Seasons) > 0 {
		params["seasons"] = cfg.Candidate.Seasons
	}
	return params
}
