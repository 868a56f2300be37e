// Package parquet provides data structures and functions for exporting capsule
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/capsule/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single recorded analysis run with metadata.
// This struct maps to the capsule_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RunUUID is the report identifier shown to users
	RunUUID string `parquet:"run_uuid,snappy"`

	// ProfileName is the wardrobe profile that was analyzed
	ProfileName string `parquet:"profile_name,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalGaps is the number of gaps found in this run
	TotalGaps int32 `parquet:"total_gaps,snappy"`

	// Conservative reports whether the conservative scoring policy applied
	Conservative bool `parquet:"conservative"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// GapScore represents one scored gap of a recorded analysis run.
// This struct maps to the capsule_gap_scores database table.
type GapScore struct {
	AnalysisID       int64     `parquet:"analysis_id,snappy"`
	AnalysisTime     time.Time `parquet:"analysis_time,snappy"`
	Season           string    `parquet:"season,snappy"`
	Scenario         *string   `parquet:"scenario,optional,snappy"` // nil for outerwear gaps
	IsOuterwear      bool      `parquet:"is_outerwear"`
	CurrentItems     int32     `parquet:"current_items,snappy"`
	CoveragePercent  float64   `parquet:"coverage_percent,snappy"`
	GapType          *string   `parquet:"gap_type,optional,snappy"`
	Severity         string    `parquet:"severity,snappy"`
	MandatoryScore   int32     `parquet:"mandatory_score,snappy"`
	AlternativeScore int32     `parquet:"alternative_score,snappy"`
}

// GapRow is one ranked gap of a fresh analysis, written by --output parquet.
type GapRow struct {
	Profile          string  `parquet:"profile,snappy"`
	RunID            string  `parquet:"run_id,snappy"`
	Rank             int32   `parquet:"rank,snappy"`
	Season           string  `parquet:"season,snappy"`
	Subject          string  `parquet:"subject,snappy"`
	IsOuterwear      bool    `parquet:"is_outerwear"`
	CurrentItems     int32   `parquet:"current_items,snappy"`
	CoveragePercent  float64 `parquet:"coverage_percent,snappy"`
	Classification   string  `parquet:"classification,snappy"`
	Severity         string  `parquet:"severity,snappy"`
	MandatoryScore   int32   `parquet:"mandatory_score,snappy"`
	AlternativeScore int32   `parquet:"alternative_score,snappy"`
	Conservative     bool    `parquet:"conservative"`
}

// AnalysisRunsFromRecords converts store records into Parquet rows.
func AnalysisRunsFromRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	rows := make([]AnalysisRun, len(records))
	for i, r := range records {
		rows[i] = AnalysisRun{
			AnalysisID:    r.AnalysisID,
			RunUUID:       r.RunUUID,
			ProfileName:   r.ProfileName,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalGaps:     r.TotalGaps,
			Conservative:  r.Conservative,
			ConfigParams:  r.ConfigParams,
		}
	}
	return rows
}

// GapScoresFromRecords converts store records into Parquet rows.
func GapScoresFromRecords(records []schema.GapScoreRecord) []GapScore {
	rows := make([]GapScore, len(records))
	for i, r := range records {
		rows[i] = GapScore{
			AnalysisID:       r.AnalysisID,
			AnalysisTime:     r.AnalysisTime,
			Season:           r.Season,
			Scenario:         r.Scenario,
			IsOuterwear:      r.IsOuterwear,
			CurrentItems:     r.CurrentItems,
			CoveragePercent:  r.CoveragePercent,
			GapType:          r.GapType,
			Severity:         r.Severity,
			MandatoryScore:   r.MandatoryScore,
			AlternativeScore: r.AlternativeScore,
		}
	}
	return rows
}

// GapRowsFromReports flattens ranked report gaps into Parquet rows.
func GapRowsFromReports(reports []schema.AnalysisReport) []GapRow {
	var rows []GapRow
	for _, report := range reports {
		for _, g := range schema.EnrichGaps(report.Gaps) {
			rows = append(rows, GapRow{
				Profile:          report.Name,
				RunID:            report.RunID,
				Rank:             int32(g.Rank),
				Season:           string(g.Season),
				Subject:          g.Subject(),
				IsOuterwear:      g.IsOuterwearGap,
				CurrentItems:     int32(g.CurrentItems),
				CoveragePercent:  g.CoveragePercent,
				Classification:   g.Classification(),
				Severity:         g.Label,
				MandatoryScore:   int32(g.Instruction.MandatoryScore),
				AlternativeScore: int32(g.Instruction.AlternativeScore),
				Conservative:     report.ConservativeGoals,
			})
		}
	}
	return rows
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGapScoresParquet writes a slice of GapScore structs to a Parquet file.
func WriteGapScoresParquet(data []GapScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGapRowsParquet writes a slice of GapRow structs to a Parquet file.
func WriteGapRowsParquet(data []GapRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
