// Package models defines the domain types for Laguz.
package models

// Tone classifies the overall register of a user's past journal writing.
type Tone string

// Tone values derived by the style profiler.
const (
	ToneCasual  Tone = "casual"
	ToneNeutral Tone = "neutral"
)

// Formatting preference markers detected in past entries.
const (
	FormatHighlight   = "highlight_text"
	FormatBlockquotes = "blockquotes"
	FormatBold        = "bold"
)

// StyleProfile summarizes a user's historical writing habits. It is
// computed once per vault and held in memory for the session; only the
// "already analyzed" flag is persisted.
type StyleProfile struct {
	Tone                  Tone     `json:"tone"`
	UsesEmojis            bool     `json:"uses_emojis"`
	FormattingPreferences []string `json:"formatting_preferences"`
	SampleEntries         []string `json:"sample_entries"`
}

// HasFormatting reports whether the given formatting marker was detected.
func (p *StyleProfile) HasFormatting(pref string) bool {
	for _, f := range p.FormattingPreferences {
		if f == pref {
			return true
		}
	}
	return false
}
