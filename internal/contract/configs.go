package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"

	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultLLMModel     = "claude-3-5-sonnet-latest"
	DefaultLLMMaxTokens = 1024
	MaxLLMMaxTokens     = 8192
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// TargetsRaw holds optional min/ideal/max overrides for one season.
type TargetsRaw struct {
	Min   *int `mapstructure:"min"`
	Ideal *int `mapstructure:"ideal"`
	Max   *int `mapstructure:"max"`
}

// OuterwearTargetsRaw holds per-season outerwear overrides from the YAML config file.
type OuterwearTargetsRaw struct {
	Spring *TargetsRaw `mapstructure:"spring"`
	Summer *TargetsRaw `mapstructure:"summer"`
	Fall   *TargetsRaw `mapstructure:"fall"`
	Winter *TargetsRaw `mapstructure:"winter"`
}

// FrequencyTargetsRaw holds per-frequency ideal item counts from the YAML config file.
type FrequencyTargetsRaw struct {
	Daily   *int `mapstructure:"daily"`
	Weekly  *int `mapstructure:"weekly"`
	Monthly *int `mapstructure:"monthly"`
	Rarely  *int `mapstructure:"rarely"`
}

// TargetsRawInput holds all custom target definitions from the YAML config file.
type TargetsRawInput struct {
	Outerwear OuterwearTargetsRaw `mapstructure:"outerwear"`
	Frequency FrequencyTargetsRaw `mapstructure:"frequency"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Profiles   []string
	Workers    int
	Limit      int // Maximum number of gaps to show (0 = all)
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Verbose    bool

	// Goals are user wardrobe goals that override the profile goals when set.
	Goals []string

	// Candidate holds flag-provided candidate attributes that override the profile candidate.
	Candidate schema.FormData

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// OuterwearTargets is the final per-season outerwear targets, computed from defaults + overrides
	OuterwearTargets map[schema.Season]schema.Targets

	// FrequencyTargets is the final per-frequency ideal item count, computed from defaults + overrides
	FrequencyTargets map[schema.Frequency]int

	LLMModel     string
	LLMMaxTokens int

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProfilePaths []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Workers           int    `mapstructure:"workers"`
	Limit             int    `mapstructure:"limit"`
	Width             int    `mapstructure:"width"`
	Verbose           bool   `mapstructure:"verbose"`
	Goals             string `mapstructure:"goals"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Candidate overrides ---
	Category    string `mapstructure:"category"`
	Subcategory string `mapstructure:"subcategory"`
	Seasons     string `mapstructure:"seasons"`
	ColorName   string `mapstructure:"color-name"`
	Style       string `mapstructure:"style"`
	Silhouette  string `mapstructure:"silhouette"`

	// --- Fields from adviseCmd.Flags() ---
	LLMModel     string `mapstructure:"llm-model"`
	LLMMaxTokens int    `mapstructure:"llm-max-tokens"`

	// --- Custom targets from config file ---
	Targets TargetsRawInput `mapstructure:"targets"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Profiles != nil {
		clone.Profiles = append([]string(nil), c.Profiles...)
	}
	if c.Goals != nil {
		clone.Goals = append([]string(nil), c.Goals...)
	}
	if c.Candidate.Seasons != nil {
		clone.Candidate.Seasons = append([]string(nil), c.Candidate.Seasons...)
	}
	if c.OuterwearTargets != nil {
		clone.OuterwearTargets = maps.Clone(c.OuterwearTargets)
	}
	if c.FrequencyTargets != nil {
		clone.FrequencyTargets = maps.Clone(c.FrequencyTargets)
	}
	return &clone
}

// ApplyCandidate overlays the flag-provided candidate attributes on a profile candidate.
func (c *Config) ApplyCandidate(form schema.FormData) schema.FormData {
	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&form.Category, c.Candidate.Category)
	override(&form.Subcategory, c.Candidate.Subcategory)
	override(&form.Color, c.Candidate.Color)
	override(&form.Style, c.Candidate.Style)
	override(&form.Silhouette, c.Candidate.Silhouette)
	if len(c.Candidate.Seasons) > 0 {
		form.Seasons = append([]string(nil), c.Candidate.Seasons...)
	}
	return form
}

// ApplyGoals returns the configured goals when set, otherwise the profile goals.
func (c *Config) ApplyGoals(goals []string) []string {
	if len(c.Goals) > 0 {
		return c.Goals
	}
	return goals
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCandidate(cfg, input); err != nil {
		return err
	}
	if err := processLLMSettings(cfg, input); err != nil {
		return err
	}
	if err := processCustomTargets(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' with the host:port address")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the analysis backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
}

// validateSimpleInputs processes and validates all non-candidate fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Profiles = input.ProfilePaths
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.Goals = ParseCSVList(input.Goals)

	// Parse emoji and color flags; unset means no
	if input.Emoji != "" {
		emojis, err := ParseBoolString(input.Emoji)
		if err != nil {
			return fmt.Errorf("invalid --emoji value: %w", err)
		}
		cfg.UseEmojis = emojis
	}
	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	// --- 1. Limit Validation ---
	if input.Limit < 0 {
		return fmt.Errorf("limit cannot be negative (received %d)", input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processCandidate validates the candidate overrides provided as flags.
func processCandidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Candidate = schema.FormData{
		Subcategory: strings.TrimSpace(input.Subcategory),
		Color:       strings.TrimSpace(input.ColorName),
		Style:       strings.TrimSpace(input.Style),
		Silhouette:  strings.TrimSpace(input.Silhouette),
	}

	if input.Category != "" {
		category, ok := schema.ParseCategory(input.Category)
		if !ok {
			return fmt.Errorf("invalid category '%s'. must be top, bottom, one_piece, outerwear, footwear, accessory", input.Category)
		}
		cfg.Candidate.Category = string(category)
	}

	for _, s := range ParseCSVList(input.Seasons) {
		season, ok := schema.ParseSeason(s)
		if !ok {
			return fmt.Errorf("invalid season '%s'. must be spring, summer, fall, winter, all-season", s)
		}
		cfg.Candidate.Seasons = append(cfg.Candidate.Seasons, string(season))
	}
	return nil
}

// processLLMSettings validates the advisor settings.
func processLLMSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.LLMModel = strings.TrimSpace(input.LLMModel)
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultLLMModel
	}
	cfg.LLMMaxTokens = input.LLMMaxTokens
	if cfg.LLMMaxTokens == 0 {
		cfg.LLMMaxTokens = DefaultLLMMaxTokens
	}
	if cfg.LLMMaxTokens < 0 || cfg.LLMMaxTokens > MaxLLMMaxTokens {
		return fmt.Errorf("llm-max-tokens must be between 1 and %d (received %d)", MaxLLMMaxTokens, input.LLMMaxTokens)
	}
	return nil
}

// ProcessOuterwearTargets merges the raw overrides onto the seasonal defaults and
// validates that every season satisfies 0 <= min <= ideal <= max.
func ProcessOuterwearTargets(raw OuterwearTargetsRaw) (map[schema.Season]schema.Targets, error) {
	overrides := map[schema.Season]*TargetsRaw{
		schema.Spring: raw.Spring,
		schema.Summer: raw.Summer,
		schema.Fall:   raw.Fall,
		schema.Winter: raw.Winter,
	}

	result := make(map[schema.Season]schema.Targets, len(schema.CalendarSeasons))
	for _, season := range schema.CalendarSeasons {
		t := algo.SeasonalFallbackTargets(season)
		if o := overrides[season]; o != nil {
			if o.Min != nil {
				t.Min = *o.Min
			}
			if o.Ideal != nil {
				t.Ideal = *o.Ideal
			}
			if o.Max != nil {
				t.Max = *o.Max
			}
		}
		if t.Min < 0 || t.Min > t.Ideal || t.Ideal > t.Max {
			return nil, fmt.Errorf("outerwear targets for %s must satisfy 0 <= min <= ideal <= max (got %d/%d/%d)", season, t.Min, t.Ideal, t.Max)
		}
		result[season] = t
	}
	return result, nil
}

// ProcessFrequencyTargets merges the raw overrides onto the frequency defaults.
func ProcessFrequencyTargets(raw FrequencyTargetsRaw) (map[schema.Frequency]int, error) {
	overrides := map[schema.Frequency]*int{
		schema.Daily:   raw.Daily,
		schema.Weekly:  raw.Weekly,
		schema.Monthly: raw.Monthly,
		schema.Rarely:  raw.Rarely,
	}

	result := make(map[schema.Frequency]int, len(overrides))
	for freq, override := range overrides {
		target := algo.FrequencyTarget(freq)
		if override != nil {
			target = *override
		}
		if target <= 0 {
			return nil, fmt.Errorf("frequency target for %s must be greater than 0 (got %d)", freq, target)
		}
		result[freq] = target
	}
	return result, nil
}

// processCustomTargets converts the raw target input into the final target maps.
func processCustomTargets(cfg *Config, input *ConfigRawInput) error {
	outerwear, err := ProcessOuterwearTargets(input.Targets.Outerwear)
	if err != nil {
		return err
	}
	frequency, err := ProcessFrequencyTargets(input.Targets.Frequency)
	if err != nil {
		return err
	}
	cfg.OuterwearTargets = outerwear
	cfg.FrequencyTargets = frequency
	return nil
}
