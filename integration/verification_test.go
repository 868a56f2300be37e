//go:build integration

// Package integration contains integration tests for capsule.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// standardPercentScores reads the percentage rows of the standard policy from 'capsule scoring'.
func standardPercentScores(t *testing.T) map[string]int {
	t.Helper()
	out, err := runCapsuleCommand(t, nil, "scoring", "--output", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	scores := make(map[string]int)
	for _, rec := range records[1:] {
		if rec[0] != "percentage" {
			continue
		}
		score, err := strconv.Atoi(rec[2])
		require.NoError(t, err)
		scores[rec[1]] = score
	}
	require.Len(t, scores, 5)
	return scores
}

// bandOf mirrors the documented percentage bands.
func bandOf(percent float64) string {
	switch {
	case percent <= 20:
		return "0-20%"
	case percent <= 50:
		return "21-50%"
	case percent <= 80:
		return "51-80%"
	case percent <= 100:
		return "81-100%"
	default:
		return ">100%"
	}
}

// TestGapsVerification runs capsule gaps and verifies every mandatory score against the
// scoring table printed by capsule scoring.
func TestGapsVerification(t *testing.T) {
	scores := standardPercentScores(t)

	out, err := runCapsuleCommand(t, nil, "gaps", officeProfile, "--output", "json", "--analysis-backend", "none")
	require.NoError(t, err)

	var reports []schema.EnrichedReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "office", report.Name)
	require.NotEmpty(t, report.Gaps)

	highest := 0
	for _, gap := range report.Gaps {
		t.Run(gap.GapRecord.Label(), func(t *testing.T) {
			require.False(t, gap.IsOuterwearGap, "a top candidate only fills scenario gaps")
			assert.Equal(t, scores[bandOf(gap.CoveragePercent)], gap.Instruction.MandatoryScore)
			assert.Contains(t, gap.Instruction.RationaleText, gap.Scenario)
		})
		highest = max(highest, gap.Instruction.MandatoryScore)
	}
	assert.Equal(t, highest, report.RecommendedScore)
}

// TestScoringIsStatic verifies the scoring tables do not depend on any profile or config.
func TestScoringIsStatic(t *testing.T) {
	first, err := runCapsuleCommand(t, nil, "scoring", "--output", "json")
	require.NoError(t, err)
	second, err := runCapsuleCommand(t, []string{"CAPSULE_GOALS=minimalist"}, "scoring", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}
