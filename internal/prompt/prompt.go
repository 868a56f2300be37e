// Package prompt renders the gap analysis into the instruction block handed to a text-generation model.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/schema"
)

const gapsText = `
WARDROBE GAP ANALYSIS
{{- range $i, $g := .Gaps}}
{{inc $i}}. {{$g.Label}}: {{severity $g.Severity}} severity, {{$g.CurrentItems}} current items
{{- if $g.IsOuterwearGap}} ({{$g.GapType}} gap{{with $g.Targets}}, target {{.Min}}-{{.Max}}, ideal {{.Ideal}}{{end}})
{{- else}} ({{percent $g.CoveragePercent}} coverage{{with $g.Frequency}}, worn {{.}}{{end}})
{{- end}}
   MANDATORY SCORE: {{$g.Instruction.MandatoryScore}}/10
{{- if $g.Instruction.AlternativeScore}} (percentage framing: {{$g.Instruction.AlternativeScore}}/10){{end}}
   {{$g.Instruction.RationaleText}}
{{- end}}
`

const informationalText = `
OUTERWEAR ALREADY COVERED
{{- range .Informational}}
- {{.Label}}: {{.GapType}} with {{.CurrentItems}} items. MANDATORY SCORE: {{.Instruction.MandatoryScore}}/10
{{- end}}
`

const duplicatesText = `
DUPLICATE CHECK
{{- with .Duplicates}}
{{- if .Found}}
The wardrobe already holds {{.Count}} matching item(s) ({{severity .Severity}} severity): {{.ImpactText}}.
{{- end}}
{{- with .RecommendedBand}}
The score MUST fall within {{.Min}}-{{.Max}}.
{{- end}}
{{- end}}
`

const scoringText = `
SCORING TABLE ({{policy}} policy)
Gap type:
{{- range .Tables.GapType}}
- {{.Label}}: {{pick .}}
{{- end}}
Coverage percentage:
{{- range .Tables.Percentage}}
- {{.Label}}: {{pick .}}
{{- end}}

These scores are NON-NEGOTIABLE. Use the mandatory score stated for each gap exactly as given.
Do not raise or lower it for style, quality, price or any other consideration.
`

var funcs = template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"severity": func(s schema.Severity) string { return strings.ToUpper(schema.GetPlainLabel(s)) },
	"percent":  func(p float64) string { return fmt.Sprintf("%.0f%%", p) },
}

// view is what the templates see.
type view struct {
	schema.AnalysisReport
	Tables schema.ScoringTables
}

// Render builds the full instruction block for a report. A report without gaps has no
// gap analysis section. A report with nothing to say renders as the empty string.
func Render(report schema.AnalysisReport) (string, error) {
	v := view{AnalysisReport: report, Tables: algo.BuildScoringTables()}

	var sections []string
	add := func(name, text string) error {
		out, err := execute(name, text, v)
		if err != nil {
			return err
		}
		sections = append(sections, out)
		return nil
	}

	if report.HasGaps() {
		if err := add("gaps", gapsText); err != nil {
			return "", err
		}
	}
	if len(report.Informational) > 0 {
		if err := add("informational", informationalText); err != nil {
			return "", err
		}
	}
	if d := report.Duplicates; d != nil && (d.Found || d.RecommendedBand != nil) {
		if err := add("duplicates", duplicatesText); err != nil {
			return "", err
		}
	}
	if len(sections) == 0 {
		return "", nil
	}
	if err := add("scoring", scoringText); err != nil {
		return "", err
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

// RenderGaps renders only the gap analysis section, or the empty string without gaps.
func RenderGaps(report schema.AnalysisReport) (string, error) {
	if !report.HasGaps() {
		return "", nil
	}
	return execute("gaps", gapsText, view{AnalysisReport: report})
}

func execute(name, text string, v view) (string, error) {
	policy, pick := "standard", func(r schema.ScoringRow) int { return r.Standard }
	if v.ConservativeGoals {
		policy, pick = "conservative", func(r schema.ScoringRow) int { return r.Conservative }
	}

	t, err := template.New(name).
		Option("missingkey=zero").
		Funcs(funcs).
		Funcs(template.FuncMap{"policy": func() string { return policy }, "pick": pick}).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("%s template parse: %w", name, err)
	}

	var b bytes.Buffer
	if err := t.Execute(&b, v); err != nil {
		return "", fmt.Errorf("%s template execute: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
