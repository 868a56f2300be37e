// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/capsule/schema"
)

// ProfileSource loads wardrobe profiles for analysis.
// This allows the core analysis logic to be tested without real profile files.
type ProfileSource interface {
	// Load reads the profile at the given location.
	Load(ctx context.Context, location string) (schema.AnalysisInput, error)
}

// StoreManager defines the interface for managing persistent stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking analysis runs and storing gap scores.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, runUUID, profileName string, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalGaps int, conservative bool) error

	// RecordGapScore stores a scored gap for the analysis run
	RecordGapScore(analysisID int64, gap schema.ScoredGap) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded analysis run
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllGapScores returns every recorded gap score
	GetAllGapScores() ([]schema.GapScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Advisor turns an instruction prompt into purchase advice.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}
