// Package cmd defines the command-line interface for capsule.
package cmd

import (
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(outfitsCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(scoringCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", 0, "Number of gaps to display per profile (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine diagnostics to stderr")
	rootCmd.PersistentFlags().String("goals", "", "Comma-separated wardrobe goals that replace the profile goals")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("pprof", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Candidate overrides replace the profile candidate attributes
	rootCmd.PersistentFlags().String("category", "", "Candidate category: top or bottom or one_piece or outerwear or footwear or accessory")
	rootCmd.PersistentFlags().String("subcategory", "", "Candidate subcategory (e.g. blouse, trench)")
	rootCmd.PersistentFlags().String("color-name", "", "Candidate color")
	rootCmd.PersistentFlags().String("seasons", "", "Comma-separated candidate seasons (spring, summer, fall, winter, all-season)")
	rootCmd.PersistentFlags().String("style", "", "Candidate style")
	rootCmd.PersistentFlags().String("silhouette", "", "Candidate silhouette")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of adviseCmd to Viper
	adviseCmd.Flags().String("llm-model", contract.DefaultLLMModel, "Anthropic model used for advice")
	adviseCmd.Flags().Int("llm-max-tokens", contract.DefaultLLMMaxTokens, "Maximum tokens in the advice")
	if err := viper.BindPFlags(adviseCmd.Flags()); err != nil {
		contract.LogFatal("Error binding advise flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
