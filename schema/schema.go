// Package schema has models, enums and lookup tables for all parts of capsule.
package schema

// WardrobeItem is a read-only snapshot of one catalogued clothing item.
// An empty Seasons set means the item fits every season.
type WardrobeItem struct {
	ID          string   `json:"id,omitempty" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory,omitempty" yaml:"subcategory"`
	Color       string   `json:"color,omitempty" yaml:"color"`
	Style       string   `json:"style,omitempty" yaml:"style"`
	Silhouette  string   `json:"silhouette,omitempty" yaml:"silhouette"`
	Seasons     []Season `json:"seasons,omitempty" yaml:"seasons"`
	Scenarios   []string `json:"scenarios,omitempty" yaml:"scenarios"` // Explicit scenario tags
}

// Scenario is a user-defined usage context such as "Office Work".
type Scenario struct {
	Name        string    `json:"name" yaml:"name"`
	Frequency   Frequency `json:"frequency,omitempty" yaml:"frequency"`
	Type        string    `json:"type,omitempty" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description"`
}

// FormData is the request-scoped description of the candidate item being evaluated.
type FormData struct {
	Category    string   `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory,omitempty" yaml:"subcategory"`
	Color       string   `json:"color,omitempty" yaml:"color"`
	Style       string   `json:"style,omitempty" yaml:"style"`
	Silhouette  string   `json:"silhouette,omitempty" yaml:"silhouette"`
	Seasons     []string `json:"seasons,omitempty" yaml:"seasons"`
}

// Targets holds the min/ideal/max item counts for a coverage bucket.
// Invariant after normalization: Min <= Ideal <= Max.
type Targets struct {
	Min   int `json:"min" yaml:"min" mapstructure:"min"`
	Ideal int `json:"ideal" yaml:"ideal" mapstructure:"ideal"`
	Max   int `json:"max" yaml:"max" mapstructure:"max"`
}

// ItemCounts holds the partition sizes of the applicable items.
type ItemCounts struct {
	Tops      int `json:"tops"`
	Bottoms   int `json:"bottoms"`
	Dresses   int `json:"dresses"`
	Jumpsuits int `json:"jumpsuits"`
	Footwear  int `json:"footwear"`
	Outerwear int `json:"outerwear"`
}

// OutfitBreakdown splits the outfit total into its three disjoint families.
type OutfitBreakdown struct {
	TopBottom int `json:"top_bottom"`
	Dresses   int `json:"dresses"`
	Jumpsuits int `json:"jumpsuits"`
}

// OutfitCombination is the result of counting complete outfits for one scenario and season.
type OutfitCombination struct {
	Scenario      string          `json:"scenario"`
	Season        Season          `json:"season"`
	TotalOutfits  int             `json:"total_outfits"`
	Breakdown     OutfitBreakdown `json:"breakdown"`
	CoverageLevel int             `json:"coverage_level"` // 0-5
	Bottleneck    Bottleneck      `json:"bottleneck,omitempty"`
	ItemCounts    ItemCounts      `json:"item_counts"`
}

// CoverageRecord is the classified coverage of one scenario x season pair (regular path)
// or of one season's outerwear (ScenarioName empty).
type CoverageRecord struct {
	ScenarioName    string     `json:"scenario_name,omitempty"`
	Frequency       Frequency  `json:"frequency,omitempty"`
	Season          Season     `json:"season"`
	Category        Category   `json:"category,omitempty"`
	CurrentItems    int        `json:"current_items"`
	Targets         *Targets   `json:"targets,omitempty"` // outerwear path only
	// CoveragePercent is clamped to [0,100] on the regular path; the outerwear path keeps
	// the raw ratio so oversaturated seasons reach the >100% scoring band.
	CoveragePercent float64    `json:"coverage_percent"`
	TotalOutfits    int        `json:"total_outfits"`
	Bottleneck      Bottleneck `json:"bottleneck,omitempty"`
	GapType         GapType    `json:"gap_type,omitempty"` // outerwear path only
}

// IsOuterwear reports whether the record belongs to the outerwear path.
func (c CoverageRecord) IsOuterwear() bool {
	return c.ScenarioName == ""
}

// CoverageData is the aggregated coverage fed into gap identification.
type CoverageData struct {
	Scenarios []CoverageRecord `json:"scenarios"`
	Outerwear []CoverageRecord `json:"outerwear"`
}

// OuterwearFor returns the outerwear coverage for a season, if any exists.
func (c CoverageData) OuterwearFor(season Season) (CoverageRecord, bool) {
	for _, rec := range c.Outerwear {
		if rec.Season == season {
			return rec, true
		}
	}
	return CoverageRecord{}, false
}

// GapRecord is a season/scenario combination with insufficient coverage.
type GapRecord struct {
	Season          Season    `json:"season"`
	Scenario        string    `json:"scenario,omitempty"`
	IsOuterwearGap  bool      `json:"is_outerwear_gap"`
	Category        Category  `json:"category,omitempty"`
	CurrentItems    int       `json:"current_items"`
	CoveragePercent float64   `json:"coverage_percent"`
	Targets         *Targets  `json:"targets,omitempty"`
	Frequency       Frequency `json:"frequency,omitempty"`
	GapType         GapType   `json:"gap_type,omitempty"`
	Severity        Severity  `json:"severity"`
	IsCritical      bool      `json:"is_critical"`
	TotalOutfits    int       `json:"total_outfits"`
}

// Label names the gap for prose, e.g. "winter outerwear" or "Office / fall".
func (g GapRecord) Label() string {
	if g.IsOuterwearGap {
		return string(g.Season) + " outerwear"
	}
	return g.Scenario + " / " + string(g.Season)
}

// ScoringInstruction is the mandatory score a gap implies.
type ScoringInstruction struct {
	MandatoryScore   int    `json:"mandatory_score"`   // 1-10
	AlternativeScore int    `json:"alternative_score"` // other framing of the same decision, 0 if unavailable
	Framing          string `json:"framing"`           // "gap_type" or "percentage"
	RationaleText    string `json:"rationale"`
}

// ScoredGap is a gap annotated with its mandatory scoring instruction.
type ScoredGap struct {
	GapRecord
	Instruction ScoringInstruction `json:"instruction"`
}

// ItemAttributes are the extracted attributes of a candidate item.
type ItemAttributes struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Color       string `json:"color"`
	Silhouette  string `json:"silhouette,omitempty"`
	Style       string `json:"style,omitempty"`
}

// ScoreBand is an inclusive recommended score range.
type ScoreBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DuplicateResult reports wardrobe items that duplicate a candidate.
type DuplicateResult struct {
	Found           bool           `json:"found"`
	Count           int            `json:"count"`
	Matches         []WardrobeItem `json:"matches,omitempty"`
	Severity        Severity       `json:"severity"`
	VarietyImpact   bool           `json:"variety_impact"` // candidate color would dominate its subcategory
	ImpactText      string         `json:"impact_text,omitempty"`
	RecommendedBand *ScoreBand     `json:"recommended_band,omitempty"`
}

// AnalysisInput is everything one analysis request needs.
type AnalysisInput struct {
	Items     []WardrobeItem `json:"items" yaml:"items"`
	Scenarios []Scenario     `json:"scenarios" yaml:"scenarios"`
	Form      FormData       `json:"candidate" yaml:"candidate"`
	Goals     []string       `json:"goals,omitempty" yaml:"goals"`
}

// AnalysisReport is the deterministic output of one analysis request.
type AnalysisReport struct {
	RunID             string           `json:"run_id,omitempty"`
	Name              string           `json:"name,omitempty"`
	Form              FormData         `json:"candidate"`
	ConservativeGoals bool             `json:"conservative_goals"`
	Coverage          CoverageData     `json:"coverage"`
	Gaps              []ScoredGap      `json:"gaps"`
	Informational     []ScoredGap      `json:"informational,omitempty"` // satisfied/oversaturated outerwear
	Duplicates        *DuplicateResult `json:"duplicates,omitempty"`
	RecommendedScore  int              `json:"recommended_score"` // highest mandatory score, 0 if none
}

// HasGaps reports whether the report carries any actionable gap.
func (r AnalysisReport) HasGaps() bool {
	return len(r.Gaps) > 0
}
