package schema

import "time"

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalGaps     int              `json:"total_gaps"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the capsule_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	RunUUID       string
	ProfileName   string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalGaps     int32
	Conservative  bool
	ConfigParams  *string
}

// GapScoreRecord represents a row from the capsule_gap_scores table.
type GapScoreRecord struct {
	AnalysisID       int64
	AnalysisTime     time.Time
	Season           string
	Scenario         *string // nil for outerwear gaps
	IsOuterwear      bool
	CurrentItems     int32
	CoveragePercent  float64
	GapType          *string // nil for regular gaps
	Severity         string
	MandatoryScore   int32
	AlternativeScore int32
}
