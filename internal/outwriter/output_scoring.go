package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteScoringTables displays both mandatory scoring tables under both policies.
// This is a static display that does not require a wardrobe.
func WriteScoringTables(tables schema.ScoringTables, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, tables)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeScoringCSV(w, tables)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeScoringText(w, tables, cfg)
		}, "Wrote text")
	}
}

// writeScoringText displays the tables in human-readable form.
func writeScoringText(w io.Writer, tables schema.ScoringTables, cfg *contract.Config) error {
	title := "Capsule Scoring Tables"
	if cfg.UseEmojis {
		title = "🎯 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n======================\n\n", title); err != nil {
		return err
	}

	sections := []struct {
		name string
		rows []schema.ScoringRow
	}{
		{"Outerwear gaps are scored by gap type", tables.GapType},
		{"Scenario gaps are scored by coverage percentage", tables.Percentage},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n", section.name); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Band", "Standard", "Conservative"})
		var data [][]string
		for _, row := range section.rows {
			data = append(data, []string{
				row.Label,
				scoreLabel(row.Standard, cfg),
				scoreLabel(row.Conservative, cfg),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "Conservative goals: optimize, minimalist, buy less, declutter, save money.\n"+
		"Scores are mandatory and are never adjusted by style, quality or duplicates.")
	return err
}

// writeScoringCSV writes one row per table band.
func writeScoringCSV(w io.Writer, tables schema.ScoringTables) error {
	return writeCSVWithHeader(w, []string{"framing", "band", "standard", "conservative"}, func(cw *csv.Writer) error {
		write := func(framing string, rows []schema.ScoringRow) error {
			for _, row := range rows {
				if err := cw.Write([]string{framing, row.Label, strconv.Itoa(row.Standard), strconv.Itoa(row.Conservative)}); err != nil {
					return err
				}
			}
			return nil
		}
		if err := write("gap_type", tables.GapType); err != nil {
			return err
		}
		return write("percentage", tables.Percentage)
	})
}
