package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"hinglishgen/internal/corpus"
)

// ScriptNormalizer rewrites romanized Hindi tokens into Devanagari using the
// corpus lexicon. It is a fixed dictionary substitution, not transliteration.
type ScriptNormalizer struct {
	tables *corpus.Tables
}

// NewScriptNormalizer creates a normalizer backed by tables
func NewScriptNormalizer(tables *corpus.Tables) *ScriptNormalizer {
	return &ScriptNormalizer{tables: tables}
}

// Normalize replaces every whitespace-delimited token whose folded form (minus
// trailing `.`, `,` and `…`) is a lexicon key. Whitespace runs, the stripped
// trailing punctuation and unmatched tokens are kept byte for byte.
func (n *ScriptNormalizer) Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, tok := range splitKeepingSpace(text) {
		b.WriteString(n.normalizeToken(tok))
	}
	return b.String()
}

func (n *ScriptNormalizer) normalizeToken(tok string) string {
	r, _ := utf8.DecodeRuneInString(tok)
	if unicode.IsSpace(r) {
		return tok
	}

	word := strings.TrimRight(tok, corpus.TrailingPunctuation())
	if word == "" {
		return tok
	}
	if replacement, ok := n.tables.Lookup(corpus.FoldKey(word)); ok {
		return replacement + tok[len(word):]
	}
	return tok
}

// splitKeepingSpace cuts text into alternating runs of whitespace and
// non-whitespace so that concatenating the result reproduces text exactly.
func splitKeepingSpace(text string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			parts = append(parts, text[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}
