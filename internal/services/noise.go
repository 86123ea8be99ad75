package services

import (
	"context"

	"hinglishgen/internal/corpus"
	"hinglishgen/internal/observability"
)

// RandomSource is the single seeded source every random draw comes from.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// NoiseInjector adds casual-speech fillers around a realization
type NoiseInjector struct {
	profile corpus.NoiseProfile
	metrics *observability.GeneratorMetrics
}

// NewNoiseInjector creates an injector for profile. metrics may be nil.
func NewNoiseInjector(profile corpus.NoiseProfile, metrics *observability.GeneratorMetrics) *NoiseInjector {
	return &NoiseInjector{profile: profile, metrics: metrics}
}

// Apply runs the prefix trial and then the suffix trial on text. Each trial
// draws a Float64 and, only when it succeeds, an Intn for the filler choice.
func (ni *NoiseInjector) Apply(ctx context.Context, rng RandomSource, text string) string {
	if rng.Float64() < ni.profile.PrefixProbability && len(ni.profile.Prefixes) > 0 {
		text = ni.profile.Prefixes[rng.Intn(len(ni.profile.Prefixes))] + text
		ni.metrics.RecordNoise(ctx, observability.NoisePositionPrefix)
	}
	if rng.Float64() < ni.profile.SuffixProbability && len(ni.profile.Suffixes) > 0 {
		text += ni.profile.Suffixes[rng.Intn(len(ni.profile.Suffixes))]
		ni.metrics.RecordNoise(ctx, observability.NoisePositionSuffix)
	}
	return text
}
