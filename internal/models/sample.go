package models

import "hinglishgen/internal/config"

// Sample is one labeled training example. It is written once and never mutated.
type Sample struct {
	Input       string       `json:"input"`
	Instruction string       `json:"instruction"`
	Output      SampleOutput `json:"output"`
}

// SampleOutput is the structured target of a sample
type SampleOutput struct {
	Intent         string      `json:"intent"`
	Slots          Slots       `json:"slots"`
	NormalizedText string      `json:"normalized_text"`
	LanguageMix    string      `json:"language_mix"`
	ScriptRules    ScriptRules `json:"script_rules"`
}

// ScriptRules records which script each language is rendered in
type ScriptRules struct {
	Hindi   string `json:"hindi"`
	English string `json:"english"`
}

// DefaultScriptRules returns the Hindi-in-Devanagari, English-in-Latin rule set
func DefaultScriptRules() ScriptRules {
	return ScriptRules{Hindi: config.ScriptDevanagari, English: config.ScriptLatin}
}

// NewSample assembles a sample from a frame. The frame's slots are deep-copied
// and a frame without slots yields an empty mapping, never null.
func NewSample(frame Frame, input, instruction, normalized string) *Sample {
	slots := frame.Slots.Clone()
	if slots == nil {
		slots = Slots{}
	}
	return &Sample{
		Input:       input,
		Instruction: instruction,
		Output: SampleOutput{
			Intent:         frame.Intent,
			Slots:          slots,
			NormalizedText: normalized,
			LanguageMix:    config.LanguageMixHinglish,
			ScriptRules:    DefaultScriptRules(),
		},
	}
}
