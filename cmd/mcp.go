package cmd

import (
	"github.com/huangsam/capsule/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Capsule MCP server",
	Long: `Launch an MCP server on stdio. Agents can analyze wardrobe gaps, count outfits,
check duplicates, resolve mandatory scores and render the scoring prompt.

Flags act as defaults for every tool call; tool arguments override them.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
