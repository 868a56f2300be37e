package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{name: "one decimal", precision: 1, value: 33.3333, expected: "33.3"},
		{name: "two decimals", precision: 2, value: 66.6666, expected: "66.67"},
		{name: "whole percent", precision: 0, value: 100, expected: "100"},
		{name: "zero coverage", precision: 2, value: 0, expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, fmtPercent := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, tt.expected+"%", fmtPercent(tt.value))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"scenario": "Office Work", "score": 9}))
	assert.Equal(t, "{\n  \"scenario\": \"Office Work\",\n  \"score\": 9\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected string
	}{
		{
			name:     "gap rows",
			rows:     [][]string{{"fall", "Office Work", "9"}, {"winter", "Hiking", "10"}},
			expected: "season,scenario,score\nfall,Office Work,9\nwinter,Hiking,10\n",
		},
		{
			name:     "header only",
			expected: "season,scenario,score\n",
		},
		{
			name:     "quoted scenario",
			rows:     [][]string{{"spring", "Dinner, Drinks", "6"}},
			expected: "season,scenario,score\nspring,\"Dinner, Drinks\",6\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, []string{"season", "scenario", "score"}, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	err := writeCSVWithHeader(io.Discard, []string{"season"}, func(*csv.Writer) error { return assert.AnError })
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	called := false
	err := writeWithFile(&contract.Config{}, func(w io.Writer) error {
		called = true
		return nil
	}, "Wrote gaps")
	require.NoError(t, err)
	assert.True(t, called)

	path := filepath.Join(t.TempDir(), "gaps.json")
	err = writeWithFile(&contract.Config{OutputFile: path, UseEmojis: true}, func(w io.Writer) error {
		return writeJSON(w, map[string]any{"recommended_score": 10})
	}, "Wrote gaps")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, float64(10), decoded["recommended_score"])

	err = writeWithFile(&contract.Config{OutputFile: path}, func(io.Writer) error { return assert.AnError }, "Wrote gaps")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile(&contract.Config{OutputFile: "/nonexistent/dir/gaps.csv"}, func(io.Writer) error { return nil }, "Wrote gaps")
	require.Error(t, err)
}

func TestWriteWithFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outfits.csv")
	err := writeWithFile(&contract.Config{OutputFile: path}, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"scenario", "outfits"}, func(cw *csv.Writer) error {
			return cw.Write([]string{"Weekend Casual", "4"})
		})
	}, "Wrote outfits")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, []string{"scenario,outfits", "Weekend Casual,4"}, lines)
}

func TestGetMaxTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fixed    int
		expected int
	}{
		{name: "wide terminal is capped", width: 300, fixed: 70, expected: maxTextWidth},
		{name: "narrow terminal is floored", width: 60, fixed: 70, expected: minTextWidth},
		{name: "fits in between", width: 120, fixed: 70, expected: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getMaxTextWidth(&contract.Config{Width: tt.width}, tt.fixed))
		})
	}
}
