package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/capsule/core"
	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/profile"
	"github.com/huangsam/capsule/internal/prompt"
	"github.com/huangsam/capsule/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// inlineProfileName names reports built from an inline wardrobe document.
const inlineProfileName = "inline"

// noPromptText replaces an empty prompt so agents can tell it apart from a failure.
const noPromptText = "No gaps to report for this candidate."

// ScoreResolution is the result of the resolve_score tool.
type ScoreResolution struct {
	Conservative    bool           `json:"conservative"`
	GapType         schema.GapType `json:"gap_type,omitempty"`
	GapTypeScore    int            `json:"gap_type_score,omitempty"`
	CoveragePercent *float64       `json:"coverage_percent,omitempty"`
	PercentBand     string         `json:"percent_band,omitempty"`
	PercentScore    int            `json:"percent_score,omitempty"`
}

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAnalyzeGaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.candidateConfig(request)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	input, err := h.loadInput(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid wardrobe: %v", err)), nil
	}

	reports, err := core.AnalyzeInputs(ctx, cfg, h.mgr, []core.NamedInput{input})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return jsonResult(schema.EnrichReport(reports[0]))
}

func (h *toolHandler) handleCountOutfits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	input, err := h.loadInput(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid wardrobe: %v", err)), nil
	}

	engine := core.NewEngineFromConfig(cfg, nil)
	return jsonResult(schema.OutfitReport{
		Name:         input.Name,
		Combinations: engine.Outfits(input.Input),
	})
}

func (h *toolHandler) handleDetectDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.candidateConfig(request)
	input, err := h.loadInput(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid wardrobe: %v", err)), nil
	}
	if input.Input.Form.Subcategory == "" || input.Input.Form.Color == "" {
		return mcp.NewToolResultError("candidate subcategory and color are required"), nil
	}

	engine := core.NewEngineFromConfig(cfg, nil)
	report := engine.Analyze(input.Input)
	report.Name = input.Name
	return jsonResult(core.DuplicateReportOf(report))
}

func (h *toolHandler) handleResolveScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals := h.baseCfg.Goals
	if g := request.GetString("goals", ""); g != "" {
		goals = contract.ParseCSVList(g)
	}
	res := ScoreResolution{
		Conservative: request.GetBool("conservative", false) || algo.IsConservative(goals),
	}

	gapType := schema.GapType(schema.NormalizeKey(request.GetString("gap_type", "")))
	_, hasPercent := request.GetArguments()["coverage_percent"]
	if gapType == "" && !hasPercent {
		return mcp.NewToolResultError("either gap_type or coverage_percent is required"), nil
	}

	if gapType != "" {
		if !slices.Contains(schema.AllGapTypes, gapType) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown gap type %q", gapType)), nil
		}
		res.GapType = gapType
		res.GapTypeScore = algo.ScoreForGapType(gapType, res.Conservative)
	}
	if hasPercent {
		percent := request.GetFloat("coverage_percent", 0)
		if percent < 0 {
			return mcp.NewToolResultError("coverage_percent must be 0 or more"), nil
		}
		res.CoveragePercent = &percent
		res.PercentBand = algo.PercentBandLabel(algo.PercentBand(percent))
		res.PercentScore = algo.ScoreForPercent(percent, res.Conservative)
	}

	return jsonResult(res)
}

func (h *toolHandler) handleRenderPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.candidateConfig(request)
	input, err := h.loadInput(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid wardrobe: %v", err)), nil
	}

	report := core.NewEngineFromConfig(cfg, nil).Analyze(input.Input)
	render := prompt.Render
	if request.GetBool("gaps_only", false) {
		render = prompt.RenderGaps
	}
	text, err := render(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render prompt: %v", err)), nil
	}
	if text == "" {
		return mcp.NewToolResultText(noPromptText), nil
	}
	return mcp.NewToolResultText(strings.TrimSpace(text)), nil
}

// candidateConfig clones the base config and applies the candidate and goal arguments.
func (h *toolHandler) candidateConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("category", ""); c != "" {
		cfg.Candidate.Category = c
	}
	if s := request.GetString("subcategory", ""); s != "" {
		cfg.Candidate.Subcategory = s
	}
	if c := request.GetString("color", ""); c != "" {
		cfg.Candidate.Color = c
	}
	if s := request.GetString("seasons", ""); s != "" {
		cfg.Candidate.Seasons = contract.ParseCSVList(s)
	}
	if g := request.GetString("goals", ""); g != "" {
		cfg.Goals = contract.ParseCSVList(g)
	}
	return cfg
}

// loadInput reads the wardrobe from the profile path or the inline document
// and applies the configured candidate and goal overrides.
func (h *toolHandler) loadInput(ctx context.Context, cfg *contract.Config, request mcp.CallToolRequest) (core.NamedInput, error) {
	var named core.NamedInput
	switch location, doc := request.GetString("profile", ""), request.GetString("wardrobe", ""); {
	case location == profile.StdinLocation:
		return named, errors.New("profile cannot be read from stdin over MCP")
	case location != "":
		input, err := profile.NewLoader().Load(ctx, location)
		if err != nil {
			return named, err
		}
		named = core.NamedInput{Name: profile.Name(location), Input: input}
	case doc != "":
		input, err := profile.Decode(strings.NewReader(doc))
		if err != nil {
			return named, err
		}
		named = core.NamedInput{Name: inlineProfileName, Input: input}
	default:
		return named, errors.New("either profile or wardrobe is required")
	}

	named.Input.Form = cfg.ApplyCandidate(named.Input.Form)
	named.Input.Goals = cfg.ApplyGoals(named.Input.Goals)
	return named, nil
}

// jsonResult encodes a tool result as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
