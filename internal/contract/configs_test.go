package contract

import (
	"testing"

	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ProfilePaths: []string{"profile.yaml"},
		Workers:      4,
		Precision:    1,
		Output:       "text",
		Emoji:        "no",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid workers (negative)", mutate: func(in *ConfigRawInput) { in.Workers = -1 }, expectError: true},
		{name: "invalid limit (negative)", mutate: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: true},
		{name: "invalid precision (zero)", mutate: func(in *ConfigRawInput) { in.Precision = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output format", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{
			name: "parquet with file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "gaps.parquet"
			},
		},
		{name: "invalid emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "sometimes" }, expectError: true},
		{name: "invalid analysis backend", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "redis" }, expectError: true},
		{name: "mysql backend without connection string", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "mysql" }, expectError: true},
		{
			name: "postgresql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.AnalysisBackend = "postgresql"
				in.AnalysisDBConnect = "host=localhost port=5432 user=capsule dbname=capsule"
			},
		},
		{name: "invalid category", mutate: func(in *ConfigRawInput) { in.Category = "hat" }, expectError: true},
		{name: "invalid season", mutate: func(in *ConfigRawInput) { in.Seasons = "spring,monsoon" }, expectError: true},
		{name: "invalid llm max tokens", mutate: func(in *ConfigRawInput) { in.LLMMaxTokens = 100000 }, expectError: true},
		{
			name: "invalid outerwear targets",
			mutate: func(in *ConfigRawInput) {
				in.Targets.Outerwear.Winter = &TargetsRaw{Min: intPtr(5), Ideal: intPtr(3)}
			},
			expectError: true,
		},
		{
			name: "invalid frequency target",
			mutate: func(in *ConfigRawInput) {
				in.Targets.Frequency.Daily = intPtr(0)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, []string{"profile.yaml"}, cfg.Profiles)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.False(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
	assert.Equal(t, DefaultLLMMaxTokens, cfg.LLMMaxTokens)
	assert.Equal(t, schema.Targets{Min: 2, Ideal: 3, Max: 4}, cfg.OuterwearTargets[schema.Winter])
	assert.Equal(t, schema.Targets{Min: 1, Ideal: 2, Max: 3}, cfg.OuterwearTargets[schema.Summer])
	assert.Equal(t, 20, cfg.FrequencyTargets[schema.Daily])
	assert.Equal(t, 3, cfg.FrequencyTargets[schema.Rarely])
	assert.Empty(t, cfg.Goals)
}

func TestProcessAndValidateCandidate(t *testing.T) {
	input := validInput()
	input.Category = "Outerwear"
	input.Subcategory = " trench coat "
	input.ColorName = "camel"
	input.Seasons = "autumn, spring"
	input.Goals = "save-money, minimalist wardrobe"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "outerwear", cfg.Candidate.Category)
	assert.Equal(t, "trench coat", cfg.Candidate.Subcategory)
	assert.Equal(t, "camel", cfg.Candidate.Color)
	assert.Equal(t, []string{"fall", "spring"}, cfg.Candidate.Seasons)
	assert.Equal(t, []string{"save-money", "minimalist wardrobe"}, cfg.Goals)
}

func TestProcessCustomTargets(t *testing.T) {
	input := validInput()
	input.Targets.Outerwear.Winter = &TargetsRaw{Min: intPtr(3), Ideal: intPtr(4), Max: intPtr(6)}
	input.Targets.Outerwear.Summer = &TargetsRaw{Max: intPtr(5)}
	input.Targets.Frequency.Weekly = intPtr(10)

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.Targets{Min: 3, Ideal: 4, Max: 6}, cfg.OuterwearTargets[schema.Winter])
	assert.Equal(t, schema.Targets{Min: 1, Ideal: 2, Max: 5}, cfg.OuterwearTargets[schema.Summer])
	assert.Equal(t, schema.Targets{Min: 3, Ideal: 4, Max: 5}, cfg.OuterwearTargets[schema.Spring])
	assert.Equal(t, 10, cfg.FrequencyTargets[schema.Weekly])
	assert.Equal(t, 6, cfg.FrequencyTargets[schema.Monthly])
}

func TestConfigApplyCandidate(t *testing.T) {
	cfg := &Config{Candidate: schema.FormData{Color: "navy", Seasons: []string{"winter"}}}
	profile := schema.FormData{Category: "outerwear", Subcategory: "coat", Color: "camel", Seasons: []string{"fall"}}

	got := cfg.ApplyCandidate(profile)

	assert.Equal(t, "outerwear", got.Category)
	assert.Equal(t, "coat", got.Subcategory)
	assert.Equal(t, "navy", got.Color)
	assert.Equal(t, []string{"winter"}, got.Seasons)
	assert.Equal(t, []string{"fall"}, profile.Seasons, "profile candidate must not be mutated")
}

func TestConfigApplyGoals(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, []string{"save-money"}, cfg.ApplyGoals([]string{"save-money"}))
	cfg.Goals = []string{"declutter"}
	assert.Equal(t, []string{"declutter"}, cfg.ApplyGoals([]string{"save-money"}))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Profiles:         []string{"a.yaml"},
		Goals:            []string{"save-money"},
		OuterwearTargets: map[schema.Season]schema.Targets{schema.Winter: {Min: 1, Ideal: 2, Max: 3}},
		FrequencyTargets: map[schema.Frequency]int{schema.Daily: 20},
	}
	clone := cfg.Clone()
	clone.Profiles[0] = "b.yaml"
	clone.Goals[0] = "declutter"
	clone.OuterwearTargets[schema.Winter] = schema.Targets{}
	clone.FrequencyTargets[schema.Daily] = 1

	assert.Equal(t, "a.yaml", cfg.Profiles[0])
	assert.Equal(t, "save-money", cfg.Goals[0])
	assert.Equal(t, 2, cfg.OuterwearTargets[schema.Winter].Ideal)
	assert.Equal(t, 20, cfg.FrequencyTargets[schema.Daily])
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/capsule"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}
