package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/parquet"
)

// ErrTrackingDisabled is returned when the history commands run without an analysis store.
var ErrTrackingDisabled = errors.New("analysis tracking is disabled; set --analysis-backend")

// ExportAnalysis writes every tracked run and gap score to Parquet files named after outputFile.
func ExportAnalysis(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return ErrTrackingDisabled
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total gap records: %d\n", status.TableSizes[gapScoresTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	gaps, err := store.GetAllGapScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve gap scores: %w", err)
	}

	parquetRuns := parquet.AnalysisRunsFromRecords(runs)
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	parquetGaps := parquet.GapScoresFromRecords(gaps)
	gapsFile := outputFile + ".gap_scores.parquet"
	if err := parquet.WriteGapScoresParquet(parquetGaps, gapsFile); err != nil {
		return fmt.Errorf("failed to write gap scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d gap score records to: %s\n", len(parquetGaps), gapsFile)

	return nil
}
