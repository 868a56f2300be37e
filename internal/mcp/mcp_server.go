// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Shared argument descriptions for tools that read a wardrobe.
const (
	profileArgDesc  = "Path to a YAML or JSON wardrobe profile."
	wardrobeArgDesc = "Inline wardrobe profile document (YAML or JSON) with items, scenarios, candidate and goals. Used when profile is not set."
)

// NewMCPServer initializes and configures the Capsule MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Capsule Gap Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_gaps ---
	s.AddTool(mcp.NewTool("analyze_gaps",
		mcp.WithDescription("Find the scenario and outerwear coverage gaps a candidate item would fill, with mandatory scores."),
		mcp.WithString("profile", mcp.Description(profileArgDesc)),
		mcp.WithString("wardrobe", mcp.Description(wardrobeArgDesc)),
		mcp.WithString("category", mcp.Description("Candidate category override."), mcp.Enum("top", "bottom", "one_piece", "outerwear", "footwear", "accessory")),
		mcp.WithString("subcategory", mcp.Description("Candidate subcategory override (e.g. blouse, trench).")),
		mcp.WithString("color", mcp.Description("Candidate color override.")),
		mcp.WithString("seasons", mcp.Description("Comma-separated candidate seasons override (e.g. 'spring,fall').")),
		mcp.WithString("goals", mcp.Description("Comma-separated wardrobe goals override.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of gaps returned.")),
	), h.handleAnalyzeGaps)

	// --- 2. Tool: count_outfits ---
	s.AddTool(mcp.NewTool("count_outfits",
		mcp.WithDescription("Count complete outfits for every scenario and season of a wardrobe."),
		mcp.WithString("profile", mcp.Description(profileArgDesc)),
		mcp.WithString("wardrobe", mcp.Description(wardrobeArgDesc)),
	), h.handleCountOutfits)

	// --- 3. Tool: detect_duplicates ---
	s.AddTool(mcp.NewTool("detect_duplicates",
		mcp.WithDescription("Find wardrobe items with the same subcategory and color as the candidate."),
		mcp.WithString("profile", mcp.Description(profileArgDesc)),
		mcp.WithString("wardrobe", mcp.Description(wardrobeArgDesc)),
		mcp.WithString("subcategory", mcp.Description("Candidate subcategory override.")),
		mcp.WithString("color", mcp.Description("Candidate color override.")),
	), h.handleDetectDuplicates)

	// --- 4. Tool: resolve_score ---
	s.AddTool(mcp.NewTool("resolve_score",
		mcp.WithDescription("Look up the mandatory score for an outerwear gap type or a coverage percentage."),
		mcp.WithString("gap_type", mcp.Description("Outerwear gap type."), mcp.Enum("critical", "improvement", "expansion", "satisfied", "oversaturated")),
		mcp.WithNumber("coverage_percent", mcp.Description("Scenario coverage percentage, 0 or more.")),
		mcp.WithString("goals", mcp.Description("Comma-separated wardrobe goals; minimalist, declutter or save-money goals select the conservative table.")),
		mcp.WithBoolean("conservative", mcp.Description("Force the conservative scoring table.")),
	), h.handleResolveScore)

	// --- 5. Tool: render_prompt ---
	s.AddTool(mcp.NewTool("render_prompt",
		mcp.WithDescription("Render the gap analysis and scoring instructions for a text-generation model."),
		mcp.WithString("profile", mcp.Description(profileArgDesc)),
		mcp.WithString("wardrobe", mcp.Description(wardrobeArgDesc)),
		mcp.WithString("category", mcp.Description("Candidate category override."), mcp.Enum("top", "bottom", "one_piece", "outerwear", "footwear", "accessory")),
		mcp.WithString("subcategory", mcp.Description("Candidate subcategory override.")),
		mcp.WithString("color", mcp.Description("Candidate color override.")),
		mcp.WithString("seasons", mcp.Description("Comma-separated candidate seasons override.")),
		mcp.WithString("goals", mcp.Description("Comma-separated wardrobe goals override.")),
		mcp.WithBoolean("gaps_only", mcp.Description("Render only the gap analysis section.")),
	), h.handleRenderPrompt)

	return s
}

// StartMCPServer starts the Capsule MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
