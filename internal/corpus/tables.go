// Package corpus holds the read-only lookup tables the generator draws from:
// the romanized-to-Devanagari lexicon, the semantic frame pool, the surface
// realization pools and the noise profile.
package corpus

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"hinglishgen/internal/models"
	contextutils "hinglishgen/internal/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NoiseProfile describes the casual-speech fillers added around a realization.
// Each list may contain the empty string, which is a valid "no filler" choice.
type NoiseProfile struct {
	PrefixProbability float64  `json:"prefix_probability" yaml:"prefix_probability"`
	Prefixes          []string `json:"prefixes" yaml:"prefixes"`
	SuffixProbability float64  `json:"suffix_probability" yaml:"suffix_probability"`
	Suffixes          []string `json:"suffixes" yaml:"suffixes"`
}

// Tables is the full set of static generation data
type Tables struct {
	Lexicon      map[string]string   `json:"lexicon" yaml:"lexicon"`
	Frames       []models.Frame      `json:"frames" yaml:"frames"`
	Realizations map[string][]string `json:"realizations" yaml:"realizations"`
	Noise        NoiseProfile        `json:"noise" yaml:"noise"`
}

// Builtin returns a private copy of the built-in tables
func Builtin() *Tables {
	t := &Tables{
		Lexicon:      make(map[string]string, len(builtinLexicon)),
		Frames:       make([]models.Frame, len(builtinFrames)),
		Realizations: make(map[string][]string, len(builtinRealizations)),
		Noise:        builtinNoise.clone(),
	}
	for k, v := range builtinLexicon {
		t.Lexicon[k] = v
	}
	for i, f := range builtinFrames {
		t.Frames[i] = f.Clone()
	}
	for k, v := range builtinRealizations {
		t.Realizations[k] = append([]string(nil), v...)
	}
	return t
}

func (n NoiseProfile) clone() NoiseProfile {
	return NoiseProfile{
		PrefixProbability: n.PrefixProbability,
		Prefixes:          append([]string(nil), n.Prefixes...),
		SuffixProbability: n.SuffixProbability,
		Suffixes:          append([]string(nil), n.Suffixes...),
	}
}

// FoldKey is the canonical lexicon key form of a token: NFC, lower-cased.
func FoldKey(token string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(token))
}

// Lookup returns the Devanagari rendering of an already folded key
func (t *Tables) Lookup(key string) (string, bool) {
	v, ok := t.Lexicon[key]
	return v, ok
}

// RealizationsFor returns the surface pool of a frame type. A missing or empty
// pool is a data-consistency error, never an empty result.
func (t *Tables) RealizationsFor(frameType string) ([]string, error) {
	pool := t.Realizations[frameType]
	if len(pool) == 0 {
		return nil, contextutils.WrapErrorf(contextutils.ErrDataConsistency, "no realizations for frame type %q", frameType)
	}
	return pool, nil
}

// Validate checks the static consistency invariants of the tables
func (t *Tables) Validate() error {
	var problems []string

	if len(t.Frames) == 0 {
		problems = append(problems, "frame pool is empty")
	}
	for i, f := range t.Frames {
		if strings.TrimSpace(f.Intent) == "" {
			problems = append(problems, fmt.Sprintf("frame %d has no intent", i))
		}
		if f.Slots == nil {
			problems = append(problems, fmt.Sprintf("frame %d (%s) has no slots", i, f.Intent))
		}
		seen := make(map[string]bool, len(f.Slots))
		for _, slot := range f.Slots {
			switch {
			case strings.TrimSpace(slot.Name) == "":
				problems = append(problems, fmt.Sprintf("frame %d (%s) has an unnamed slot", i, f.Intent))
			case seen[slot.Name]:
				problems = append(problems, fmt.Sprintf("frame %d (%s) repeats slot %q", i, f.Intent, slot.Name))
			}
			seen[slot.Name] = true
		}
		if strings.TrimSpace(f.Type) == "" {
			problems = append(problems, fmt.Sprintf("frame %d (%s) has no type", i, f.Intent))
			continue
		}
		pool := t.Realizations[f.Type]
		if len(pool) == 0 {
			problems = append(problems, fmt.Sprintf("frame type %q has no realizations", f.Type))
		}
		for j, r := range pool {
			if strings.TrimSpace(r) == "" {
				problems = append(problems, fmt.Sprintf("realization %s[%d] is blank", f.Type, j))
			}
		}
	}

	keys := make([]string, 0, len(t.Lexicon))
	for k := range t.Lexicon {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch {
		case k == "":
			problems = append(problems, "lexicon has an empty key")
		case strings.IndexFunc(k, unicode.IsSpace) >= 0:
			problems = append(problems, fmt.Sprintf("lexicon key %q contains whitespace", k))
		case FoldKey(k) != k:
			problems = append(problems, fmt.Sprintf("lexicon key %q is not lower-case", k))
		case strings.TrimRight(k, trailingPunctuation) != k:
			problems = append(problems, fmt.Sprintf("lexicon key %q ends in punctuation", k))
		}
	}

	if !isProbability(t.Noise.PrefixProbability) {
		problems = append(problems, fmt.Sprintf("prefix probability %v outside [0,1]", t.Noise.PrefixProbability))
	}
	if !isProbability(t.Noise.SuffixProbability) {
		problems = append(problems, fmt.Sprintf("suffix probability %v outside [0,1]", t.Noise.SuffixProbability))
	}
	if len(t.Noise.Prefixes) == 0 {
		problems = append(problems, "prefix list is empty")
	}
	if len(t.Noise.Suffixes) == 0 {
		problems = append(problems, "suffix list is empty")
	}

	if len(problems) > 0 {
		return contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeDataConsistency,
			contextutils.SeverityFatal,
			"Corpus tables are inconsistent",
			strings.Join(problems, "; "),
			contextutils.ErrDataConsistency,
		)
	}
	return nil
}

// trailingPunctuation is stripped from a token before lexicon lookup
const trailingPunctuation = ".,…"

// TrailingPunctuation returns the characters stripped from token ends before lookup
func TrailingPunctuation() string {
	return trailingPunctuation
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}
