package core

import (
	"github.com/huangsam/capsule/core/algo"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"go.uber.org/zap"
)

// Engine runs the gap analysis. It carries configuration only, so a single
// Engine can serve concurrent requests.
type Engine struct {
	logger           *zap.Logger
	outerwearTargets map[schema.Season]schema.Targets
	frequencyTargets map[schema.Frequency]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes diagnostics to the given logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOuterwearTargets overrides the per-season outerwear targets.
// Targets are normalized so that min <= ideal <= max.
func WithOuterwearTargets(targets map[schema.Season]schema.Targets) Option {
	return func(e *Engine) {
		for season, t := range targets {
			e.outerwearTargets[season] = algo.NormalizeTargets(t)
		}
	}
}

// WithFrequencyTargets overrides the per-frequency ideal item counts.
// Non-positive counts are ignored.
func WithFrequencyTargets(targets map[schema.Frequency]int) Option {
	return func(e *Engine) {
		for freq, t := range targets {
			if t > 0 {
				e.frequencyTargets[freq] = t
			}
		}
	}
}

// NewEngine creates an Engine with the seasonal and frequency defaults.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:           zap.NewNop(),
		outerwearTargets: make(map[schema.Season]schema.Targets, len(schema.CalendarSeasons)),
		frequencyTargets: make(map[schema.Frequency]int, len(schema.ValidFrequencies)),
	}
	for _, season := range schema.CalendarSeasons {
		e.outerwearTargets[season] = algo.SeasonalFallbackTargets(season)
	}
	for freq := range schema.ValidFrequencies {
		e.frequencyTargets[freq] = algo.FrequencyTarget(freq)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig creates an Engine from the validated config.
func NewEngineFromConfig(cfg *contract.Config, logger *zap.Logger) *Engine {
	return NewEngine(
		WithLogger(logger),
		WithOuterwearTargets(cfg.OuterwearTargets),
		WithFrequencyTargets(cfg.FrequencyTargets),
	)
}

// OuterwearTargets returns the outerwear targets for a season.
func (e *Engine) OuterwearTargets(season schema.Season) schema.Targets {
	if t, ok := e.outerwearTargets[season]; ok {
		return t
	}
	return algo.SeasonalFallbackTargets(season)
}

// FrequencyTarget returns the ideal item count for a scenario frequency.
func (e *Engine) FrequencyTarget(freq schema.Frequency) int {
	if t, ok := e.frequencyTargets[freq]; ok {
		return t
	}
	return algo.FrequencyTarget(freq)
}
