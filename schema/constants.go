package schema

// Custom string types for type safety.
type (
	// Category represents the top-level garment category of a wardrobe item.
	Category string

	// Season represents a wearing season.
	Season string

	// Frequency represents how often a usage scenario occurs.
	Frequency string

	// GapType represents the outerwear deficiency/surplus classification.
	GapType string

	// Bottleneck represents the category that prevents forming any complete outfit.
	Bottleneck string

	// Severity represents the display severity of a coverage percentage.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for analysis tracking.
	DatabaseBackend string
)

// All garment categories supported.
const (
	TopCategory       Category = "top"
	BottomCategory    Category = "bottom"
	OnePieceCategory  Category = "one_piece" // dress or jumpsuit, see subcategory
	OuterwearCategory Category = "outerwear"
	FootwearCategory  Category = "footwear"
	AccessoryCategory Category = "accessory"
)

// One-piece subcategories that form their own outfit families.
const (
	DressSubcategory    = "dress"
	JumpsuitSubcategory = "jumpsuit"
)

// All seasons supported.
const (
	Spring    Season = "spring"
	Summer    Season = "summer"
	Fall      Season = "fall"
	Winter    Season = "winter"
	AllSeason Season = "all-season"
)

// All scenario frequencies supported.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Rarely  Frequency = "rarely"
)

// All outerwear gap types, ordered from most to least urgent.
const (
	CriticalGap      GapType = "critical"
	ImprovementGap   GapType = "improvement"
	ExpansionGap     GapType = "expansion"
	SatisfiedGap     GapType = "satisfied"
	OversaturatedGap GapType = "oversaturated"
)

// All bottlenecks reported by the outfit calculator.
const (
	NoBottleneck             Bottleneck = ""
	FootwearBottleneck       Bottleneck = "footwear"
	TopsOrDressesBottleneck  Bottleneck = "tops_or_dresses"
	BottomsOrDressBottleneck Bottleneck = "bottoms_or_dresses"
)

// All display severities.
const (
	NoSeverity       Severity = "none"
	CriticalSeverity Severity = "critical"
	HighSeverity     Severity = "high"
	ModerateSeverity Severity = "moderate"
	LowSeverity      Severity = "low"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All analysis backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// CalendarSeasons lists the four concrete seasons in analysis order.
var CalendarSeasons = []Season{Spring, Summer, Fall, Winter}

// AllGapTypes lists gap types from most to least urgent.
var AllGapTypes = []GapType{CriticalGap, ImprovementGap, ExpansionGap, SatisfiedGap, OversaturatedGap}

// ValidCategories lists all valid garment categories.
var ValidCategories = map[Category]struct{}{
	TopCategory:       {},
	BottomCategory:    {},
	OnePieceCategory:  {},
	OuterwearCategory: {},
	FootwearCategory:  {},
	AccessoryCategory: {},
}

// ValidSeasons lists all valid seasons, including the all-season marker.
var ValidSeasons = map[Season]struct{}{
	Spring:    {},
	Summer:    {},
	Fall:      {},
	Winter:    {},
	AllSeason: {},
}

// ValidFrequencies lists all valid scenario frequencies.
var ValidFrequencies = map[Frequency]struct{}{
	Daily:   {},
	Weekly:  {},
	Monthly: {},
	Rarely:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid analysis backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsGap reports whether the gap type needs action and is worth mentioning as a gap.
// Satisfied and oversaturated are informational only.
func (g GapType) IsGap() bool {
	return g == CriticalGap || g == ImprovementGap || g == ExpansionGap
}

// Rank orders gap types from most urgent (0) to least urgent (4).
// Unknown gap types rank after all known ones.
func (g GapType) Rank() int {
	for i, t := range AllGapTypes {
		if t == g {
			return i
		}
	}
	return len(AllGapTypes)
}
