// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGaps prints gap analysis reports using the configured output format.
func (ow *OutWriter) WriteGaps(reports []schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return WriteGapReports(reports, cfg, duration)
}

// WriteOutfits prints outfit matrices using the configured output format.
func (ow *OutWriter) WriteOutfits(reports []schema.OutfitReport, cfg *contract.Config) error {
	return WriteOutfitReports(reports, cfg)
}

// WriteDuplicates prints duplicate checks using the configured output format.
func (ow *OutWriter) WriteDuplicates(reports []schema.DuplicateReport, cfg *contract.Config) error {
	return WriteDuplicateReports(reports, cfg)
}

// WriteScoring prints the scoring tables using the configured output format.
func (ow *OutWriter) WriteScoring(tables schema.ScoringTables, cfg *contract.Config) error {
	return WriteScoringTables(tables, cfg)
}

// WriteText prints prompts or advice using the configured output format.
func (ow *OutWriter) WriteText(docs []TextDocument, cfg *contract.Config) error {
	return WriteTextDocuments(docs, cfg)
}
