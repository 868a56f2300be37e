package cmd

import (
	"github.com/huangsam/capsule/core"
	"github.com/huangsam/capsule/internal/advisor"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/spf13/cobra"
)

// promptCmd renders the instruction block for a scoring model.
var promptCmd = &cobra.Command{
	Use:   "prompt <profile>...",
	Short: "Render the gap analysis instructions for a scoring model.",
	Long: `Render the instruction block that tells a scoring model which gaps the candidate
fills and which score each gap mandates. Nothing is printed for a profile
without gaps or duplicates.

Examples:
  capsule prompt wardrobe.yaml
  capsule prompt wardrobe.yaml --output-file prompt.txt`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run:     runExecutor(core.ExecutePrompt, "Cannot render prompt"),
}

// adviseCmd sends the instruction block to Anthropic.
var adviseCmd = &cobra.Command{
	Use:   "advise <profile>...",
	Short: "Ask an LLM to score the candidate using the gap analysis.",
	Long: `Render the instruction block and send it to an Anthropic model for a purchase
score. The API key is read from ANTHROPIC_API_KEY. When the model cannot be
reached, the instruction block is printed instead.

Examples:
  ANTHROPIC_API_KEY=... capsule advise wardrobe.yaml
  capsule advise wardrobe.yaml --llm-model claude-3-5-haiku-latest --llm-max-tokens 512`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(cmd *cobra.Command, args []string) {
		var adv contract.Advisor
		if a, err := advisor.New(cfg.LLMModel, cfg.LLMMaxTokens); err != nil {
			contract.LogWarn("Cannot create advisor", err)
		} else {
			adv = a
		}
		runExecutor(core.NewAdviseExecutor(adv), "Cannot run advice")(cmd, args)
	},
}
