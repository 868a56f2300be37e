package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
)

// WriteDuplicateReports outputs duplicate checks, dispatching on the configured output format.
func WriteDuplicateReports(reports []schema.DuplicateReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeDuplicateCSV(w, reports)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			for _, r := range reports {
				if err := writeDuplicateText(w, r, cfg); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote text")
	}
}

// writeDuplicateText prints the verdict for one candidate followed by its matches.
func writeDuplicateText(w io.Writer, r schema.DuplicateReport, cfg *contract.Config) error {
	res := r.Result
	verdict := "no duplicates"
	if res.Found {
		verdict = fmt.Sprintf("%d duplicate(s), %s", res.Count, res.ImpactText)
	}
	if _, err := fmt.Fprintf(w, "%s: %s: %s [%s]%s\n",
		r.Name, describeCandidate(r.Candidate), verdict, severityLabel(res.Severity, cfg), bandSuffix(res.RecommendedBand)); err != nil {
		return err
	}
	for _, m := range res.Matches {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		if _, err := fmt.Fprintf(w, "  - %s (%s %s)\n", name, m.Color, m.Subcategory); err != nil {
			return err
		}
	}
	return nil
}

// writeDuplicateCSV writes one row per candidate.
func writeDuplicateCSV(w io.Writer, reports []schema.DuplicateReport) error {
	header := []string{"profile", "found", "count", "severity", "variety_impact", "band_min", "band_max", "matches"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range reports {
			bandMin, bandMax := "", ""
			if b := r.Result.RecommendedBand; b != nil {
				bandMin, bandMax = strconv.Itoa(b.Min), strconv.Itoa(b.Max)
			}
			ids := make([]string, len(r.Result.Matches))
			for i, m := range r.Result.Matches {
				ids[i] = m.ID
			}
			rec := []string{
				r.Name,
				strconv.FormatBool(r.Result.Found),
				strconv.Itoa(r.Result.Count),
				contract.GetPlainLabel(r.Result.Severity),
				strconv.FormatBool(r.Result.VarietyImpact),
				bandMin,
				bandMax,
				strings.Join(ids, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
