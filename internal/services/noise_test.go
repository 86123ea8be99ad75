package services

import (
	"context"
	"math/rand"
	"testing"

	"hinglishgen/internal/corpus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseInjector_Apply(t *testing.T) {
	profile := corpus.Builtin().Noise

	tests := []struct {
		name      string
		floats    []float64
		ints      []int
		want      string
		wantCalls []string
	}{
		{
			name:      "no noise",
			floats:    []float64{0.9, 0.9},
			want:      "kal meeting",
			wantCalls: []string{"Float64", "Float64"},
		},
		{
			name:      "prefix only",
			floats:    []float64{0.1, 0.5},
			ints:      []int{1},
			want:      "bhai kal meeting",
			wantCalls: []string{"Float64", "Intn(3)", "Float64"},
		},
		{
			name:      "suffix only",
			floats:    []float64{0.4, 0.29},
			ints:      []int{1},
			want:      "kal meeting…",
			wantCalls: []string{"Float64", "Float64", "Intn(5)"},
		},
		{
			name:      "both with empty prefix choice",
			floats:    []float64{0.0, 0.0},
			ints:      []int{2, 4},
			want:      "kal meeting yaar",
			wantCalls: []string{"Float64", "Intn(3)", "Float64", "Intn(5)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRandom{t: t, floats: tt.floats, ints: tt.ints}
			ni := NewNoiseInjector(profile, nil)

			got := ni.Apply(context.Background(), rng, "kal meeting")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, rng.calls)
			assert.Empty(t, rng.floats)
			assert.Empty(t, rng.ints)
		})
	}
}

func TestNoiseInjector_ResultIsAlwaysAVariantOfBase(t *testing.T) {
	profile := corpus.Builtin().Noise
	ni := NewNoiseInjector(profile, nil)
	rng := rand.New(rand.NewSource(7))

	const base = "kal subah call"
	for i := 0; i < 500; i++ {
		got := ni.Apply(context.Background(), rng, base)
		require.Contains(t, got, base)
		assert.True(t, hasAffixes(got, base, profile), got)
	}
}

func hasAffixes(got, base string, profile corpus.NoiseProfile) bool {
	prefixes := append([]string{""}, profile.Prefixes...)
	suffixes := append([]string{""}, profile.Suffixes...)
	for _, p := range prefixes {
		for _, s := range suffixes {
			if p+base+s == got {
				return true
			}
		}
	}
	return false
}
