package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/iocache"
	"github.com/huangsam/capsule/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackend reads the analysis backend settings without the full shared setup.
// An empty backend means tracking is disabled.
func historyBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if b := strings.ToLower(viper.GetString("analysis-backend")); b != "" {
		backend = schema.DatabaseBackend(b)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration and opens the analysis store.
// History commands skip profile loading and candidate validation.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackend()
	if err != nil {
		return err
	}
	if err := iocache.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historyMigrateSetup loads the backend settings without opening the store,
// so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackend()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// trackingStore returns the open analysis store or fails when tracking is off.
func trackingStore() contract.AnalysisStore {
	if storeManager == nil || storeManager.GetAnalysisStore() == nil || cfg.AnalysisBackend == schema.NoneBackend {
		contract.LogFatal("Cannot read analysis history", iocache.ErrTrackingDisabled)
	}
	return storeManager.GetAnalysisStore()
}

// historyCmd focused on analysis run history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage tracked analysis runs and exports",
	Long: `Manage the history of gap analyses.

When --analysis-backend is set, every 'capsule gaps' run and every analyze_gaps
MCP call records:
- Run metadata (profile, timestamp, configuration, duration, policy)
- Every gap found, with its coverage, severity and both scores

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show tracking statistics
  export  - Export runs and gaps to Parquet
  clear   - Remove all tracked data
  migrate - Run database schema migrations

Examples:
  # Track runs in the default SQLite file
  capsule gaps wardrobe.yaml --analysis-backend sqlite
  capsule history status --analysis-backend sqlite`,
}

// historyClearCmd clears the analysis data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked analysis runs",
	Long: `Delete all stored analysis runs and gap scores.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the analysis tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  capsule history export --analysis-backend sqlite --output-file backup
  capsule history clear --analysis-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite file before removing it
		iocache.CloseStore()
		dbFile := cfg.AnalysisDBConnect
		if dbFile == "" {
			dbFile = contract.GetAnalysisDBFilePath()
		}
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, dbFile, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// historyStatusCmd shows analysis status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display tracking statistics and connection details",
	Long: `Show the backend, the number of tracked runs and gaps, the first and last run
times, and the size of each analysis table.

Examples:
  capsule history status --analysis-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := trackingStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// historyExportCmd exports analysis data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs and gaps to Parquet",
	Long: `Export all tracked data to two Parquet files for analytics tools:
- <output-file>.analysis_runs.parquet - one row per analysis run
- <output-file>.gap_scores.parquet    - one row per recorded gap

Requires: --output-file parameter

Examples:
  capsule history export --analysis-backend sqlite --output-file capsule
  duckdb -c "SELECT season, avg(mandatory_score) FROM 'capsule.gap_scores.parquet' GROUP BY 1"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportAnalysis(os.Stdout, trackingStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the analysis store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the analysis tables.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  capsule history migrate --analysis-backend postgresql --analysis-db-connect "host=... dbname=..."

  # Rollback every migration
  capsule history migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(os.Stdout, cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
