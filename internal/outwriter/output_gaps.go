package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/parquet"
	"github.com/huangsam/capsule/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGapReports outputs analysis reports, dispatching on the configured output format.
func WriteGapReports(reports []schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeGapJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeGapCSV(w, reports, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteGapRowsParquet(parquet.GapRowsFromReports(reports), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			for i, report := range reports {
				if i > 0 {
					if _, err := fmt.Fprintln(w); err != nil {
						return err
					}
				}
				if err := writeGapTable(w, report, cfg, fmtPercent); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Analysis backend: %s\n",
				duration, cfg.Workers, cfg.AnalysisBackend)
			return err
		}, "Wrote table")
	}
}

// writeGapTable generates and writes the human-readable table for one report.
func writeGapTable(w io.Writer, report schema.AnalysisReport, cfg *contract.Config, fmtPercent func(float64) string) error {
	if err := writeReportHeader(w, report, cfg); err != nil {
		return err
	}

	if !report.HasGaps() {
		if _, err := fmt.Fprintln(w, "No coverage gaps for this candidate."); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Season", "Subject", "Severity", "Class", "Items", "Coverage", "Score", "Alt"})
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.Global = tw.AlignRight
		})

		subjectWidth := getMaxTextWidth(cfg, 70)
		var data [][]string
		for _, g := range schema.EnrichGaps(report.Gaps) {
			data = append(data, []string{
				strconv.Itoa(g.Rank),
				string(g.Season),
				contract.TruncateText(g.Subject(), subjectWidth),
				severityLabel(g.Severity, cfg),
				g.Classification(),
				strconv.Itoa(g.CurrentItems),
				fmtPercent(g.CoveragePercent),
				scoreLabel(g.Instruction.MandatoryScore, cfg),
				alternativeLabel(g.Instruction.AlternativeScore),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	for _, info := range report.Informational {
		if _, err := fmt.Fprintf(w, "Outerwear %s: %s with %d items (score %d)\n",
			info.Season, info.GapType, info.CurrentItems, info.Instruction.MandatoryScore); err != nil {
			return err
		}
	}
	if d := report.Duplicates; d != nil && d.Found {
		if _, err := fmt.Fprintf(w, "Duplicates: %s (%s)%s\n",
			d.ImpactText, severityLabel(d.Severity, cfg), bandSuffix(d.RecommendedBand)); err != nil {
			return err
		}
	}
	if report.RecommendedScore > 0 {
		if _, err := fmt.Fprintf(w, "Recommended score: %s/10\n", scoreLabel(report.RecommendedScore, cfg)); err != nil {
			return err
		}
	}
	return nil
}

// writeReportHeader prints the profile, candidate and scoring policy of a report.
func writeReportHeader(w io.Writer, report schema.AnalysisReport, cfg *contract.Config) error {
	title := report.Name
	if title == "" {
		title = "wardrobe"
	}
	if cfg.UseEmojis {
		title = "🧥 " + title
	}
	policy := "standard"
	if report.ConservativeGoals {
		policy = "conservative"
	}
	_, err := fmt.Fprintf(w, "%s: %s [%s policy]\n", title, describeCandidate(report.Form), policy)
	return err
}

// writeGapCSV writes one row per gap across all reports.
func writeGapCSV(w io.Writer, reports []schema.AnalysisReport, fmtFloat func(float64) string) error {
	header := []string{
		"profile",
		"run_id",
		"rank",
		"season",
		"subject",
		"classification",
		"severity",
		"current_items",
		"coverage_percent",
		"mandatory_score",
		"alternative_score",
		"framing",
		"conservative",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, report := range reports {
			for _, g := range schema.EnrichGaps(report.Gaps) {
				rec := []string{
					report.Name,
					report.RunID,
					strconv.Itoa(g.Rank),
					string(g.Season),
					g.Subject(),
					g.Classification(),
					g.Label,
					strconv.Itoa(g.CurrentItems),
					fmtFloat(g.CoveragePercent),
					strconv.Itoa(g.Instruction.MandatoryScore),
					strconv.Itoa(g.Instruction.AlternativeScore),
					g.Instruction.Framing,
					strconv.FormatBool(report.ConservativeGoals),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeGapJSON writes the reports with ranked and labeled gaps.
func writeGapJSON(w io.Writer, reports []schema.AnalysisReport) error {
	output := make([]schema.EnrichedReport, len(reports))
	for i, r := range reports {
		output[i] = schema.EnrichReport(r)
	}
	return writeJSON(w, output)
}

// describeCandidate summarizes the candidate item, e.g. "navy shirt (top) for spring, fall".
func describeCandidate(form schema.FormData) string {
	var parts []string
	for _, p := range []string{form.Color, form.Subcategory} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	desc := strings.Join(parts, " ")
	if form.Category != "" {
		if desc == "" {
			desc = form.Category
		} else {
			desc += " (" + form.Category + ")"
		}
	}
	if desc == "" {
		desc = "unspecified candidate"
	}
	if seasons := schema.NormalizeSeasons(form.Seasons); len(seasons) > 0 {
		names := make([]string, len(seasons))
		for i, s := range seasons {
			names[i] = string(s)
		}
		desc += " for " + strings.Join(names, ", ")
	}
	return desc
}

func severityLabel(severity schema.Severity, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(severity)
	}
	return contract.GetPlainLabel(severity)
}

func scoreLabel(score int, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetScoreColorLabel(score)
	}
	return strconv.Itoa(score)
}

func alternativeLabel(score int) string {
	if score == 0 {
		return "-"
	}
	return strconv.Itoa(score)
}

func bandSuffix(band *schema.ScoreBand) string {
	if band == nil {
		return ""
	}
	return fmt.Sprintf(", score must be %d-%d", band.Min, band.Max)
}
