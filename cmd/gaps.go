package cmd

import (
	"github.com/huangsam/capsule/core"
	"github.com/spf13/cobra"
)

// gapsCmd ranks the coverage gaps a candidate item would fill.
var gapsCmd = &cobra.Command{
	Use:   "gaps <profile>...",
	Short: "Show the coverage gaps a candidate item would fill.",
	Long: `Measure how each scenario and season of a wardrobe is covered, then list the gaps
the candidate item would fill together with their mandatory scores.

Each profile is a YAML or JSON document with items, scenarios, a candidate and
goals. Use '-' to read a profile from stdin. Profiles are analyzed concurrently.

Gaps are ranked by mandatory score, then severity. Outerwear candidates are also
scored by seasonal outerwear gap type (critical, improvement, expansion).

Examples:
  # Analyze one profile
  capsule gaps wardrobe.yaml

  # Override the candidate from flags
  capsule gaps wardrobe.yaml --category outerwear --subcategory trench --seasons spring,fall

  # Apply the conservative scoring policy
  capsule gaps wardrobe.yaml --goals minimalist

  # Compare many profiles as JSON
  capsule gaps a.yaml b.yaml --output json --output-file gaps.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run:     runExecutor(core.ExecuteGaps, "Cannot run gap analysis"),
}

// outfitsCmd prints the outfit matrix of each profile.
var outfitsCmd = &cobra.Command{
	Use:   "outfits <profile>...",
	Short: "Count complete outfits per scenario and season.",
	Long: `Count the complete outfits a wardrobe can form for every scenario in every season.

An outfit is a top with a bottom, a dress, or a jumpsuit, always with footwear.
When no outfit can be formed, the missing category is reported as the bottleneck.

Examples:
  capsule outfits wardrobe.yaml
  capsule outfits wardrobe.yaml --output csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run:     runExecutor(core.ExecuteOutfits, "Cannot count outfits"),
}

// duplicatesCmd checks the candidate against the wardrobe.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <profile>...",
	Short: "Find wardrobe items that duplicate the candidate.",
	Long: `Find wardrobe items with the same subcategory and color as the candidate item.

Duplicates cap the recommended score at 1-3. A candidate without duplicates that
fills a coverage gap gets a 6-8 band instead.

Examples:
  capsule duplicates wardrobe.yaml
  capsule duplicates wardrobe.yaml --subcategory t-shirt --color-name black`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run:     runExecutor(core.ExecuteDuplicates, "Cannot run duplicate check"),
}

// scoringCmd prints the scoring tables.
var scoringCmd = &cobra.Command{
	Use:   "scoring",
	Short: "Print the mandatory scoring tables.",
	Long: `Print the gap type and coverage percentage scoring tables under the standard
and conservative policies. Conservative scoring applies when the goals mention
optimizing, minimalism, buying less or decluttering.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run:     runExecutor(core.ExecuteScoring, "Cannot print scoring tables"),
}
