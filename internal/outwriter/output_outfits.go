package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ErrParquetUnsupported is returned by writers that have no columnar form.
var ErrParquetUnsupported = errors.New("parquet output is only supported for gap reports")

// WriteOutfitReports outputs outfit matrices, dispatching on the configured output format.
func WriteOutfitReports(reports []schema.OutfitReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeOutfitCSV(w, reports)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			for _, report := range reports {
				if err := writeOutfitTable(w, report, cfg); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote table")
	}
}

// writeOutfitTable writes the scenario x season matrix of one profile.
func writeOutfitTable(w io.Writer, report schema.OutfitReport, cfg *contract.Config) error {
	title := report.Name
	if cfg.UseEmojis {
		title = "👗 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Scenario", "Season", "Outfits", "Top+Bottom", "Dresses", "Jumpsuits", "Level", "Bottleneck", "Tops", "Bottoms", "Shoes"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	scenarioWidth := getMaxTextWidth(cfg, 90)
	var data [][]string
	for _, c := range report.Combinations {
		data = append(data, []string{
			contract.TruncateText(c.Scenario, scenarioWidth),
			string(c.Season),
			strconv.Itoa(c.TotalOutfits),
			strconv.Itoa(c.Breakdown.TopBottom),
			strconv.Itoa(c.Breakdown.Dresses),
			strconv.Itoa(c.Breakdown.Jumpsuits),
			strconv.Itoa(c.CoverageLevel),
			bottleneckLabel(c.Bottleneck),
			strconv.Itoa(c.ItemCounts.Tops),
			strconv.Itoa(c.ItemCounts.Bottoms),
			strconv.Itoa(c.ItemCounts.Footwear),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeOutfitCSV writes one row per scenario and season across all profiles.
func writeOutfitCSV(w io.Writer, reports []schema.OutfitReport) error {
	header := []string{
		"profile",
		"scenario",
		"season",
		"total_outfits",
		"top_bottom",
		"dresses",
		"jumpsuits",
		"coverage_level",
		"bottleneck",
		"tops",
		"bottoms",
		"dress_items",
		"jumpsuit_items",
		"footwear",
		"outerwear",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, report := range reports {
			for _, c := range report.Combinations {
				rec := []string{
					report.Name,
					c.Scenario,
					string(c.Season),
					strconv.Itoa(c.TotalOutfits),
					strconv.Itoa(c.Breakdown.TopBottom),
					strconv.Itoa(c.Breakdown.Dresses),
					strconv.Itoa(c.Breakdown.Jumpsuits),
					strconv.Itoa(c.CoverageLevel),
					string(c.Bottleneck),
					strconv.Itoa(c.ItemCounts.Tops),
					strconv.Itoa(c.ItemCounts.Bottoms),
					strconv.Itoa(c.ItemCounts.Dresses),
					strconv.Itoa(c.ItemCounts.Jumpsuits),
					strconv.Itoa(c.ItemCounts.Footwear),
					strconv.Itoa(c.ItemCounts.Outerwear),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func bottleneckLabel(b schema.Bottleneck) string {
	if b == schema.NoBottleneck {
		return "-"
	}
	return string(b)
}
