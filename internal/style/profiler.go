// Package style derives a writing-style profile from past journal entries
// and renders it as prompt instructions for entry generation.
package style

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/storage"
)

const (
	// maxFiles caps how many notes one analysis pass reads.
	maxFiles = 10
	// maxSamples and sampleLen bound the raw excerpts kept in the profile.
	maxSamples = 3
	sampleLen  = 500

	emojiThreshold  = 5
	casualThreshold = 3
)

var casualMarkerRe = regexp.MustCompile(`(?i)\b(like|yeah|damn|lol|omg|btw)\b`)

// Profiler analyzes the vault's daily notes.
type Profiler struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewProfiler creates a Profiler over the given vault.
func NewProfiler(store storage.Provider, logger *slog.Logger) *Profiler {
	return &Profiler{store: store, logger: logger}
}

// Analyze reads up to 10 of the most recent daily notes (filename
// descending) and derives a style profile from their Logs sections.
// Unreadable files are skipped; an empty vault yields the default
// profile. Analyze never fails on per-file problems.
func (p *Profiler) Analyze() (*models.StyleProfile, error) {
	profile := &models.StyleProfile{
		Tone: models.ToneCasual,
	}

	metas, err := p.store.List()
	if err != nil {
		return nil, err
	}
	if len(metas) > maxFiles {
		metas = metas[:maxFiles]
	}

	var texts []string
	emojiCount := 0

	for _, m := range metas {
		data, err := p.store.Read(m.Path)
		if err != nil {
			p.logger.Debug("style: skipping unreadable note",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		logs, ok := parser.ExtractLogs(string(data))
		if !ok {
			continue
		}
		texts = append(texts, logs)
		emojiCount += countEmojis(logs)

		if len(profile.SampleEntries) < maxSamples {
			profile.SampleEntries = append(profile.SampleEntries, truncate(logs, sampleLen))
		}
	}

	if len(texts) == 0 {
		return profile, nil
	}

	combined := strings.Join(texts, "\n")

	profile.UsesEmojis = emojiCount > emojiThreshold

	if len(casualMarkerRe.FindAllString(combined, -1)) > casualThreshold {
		profile.Tone = models.ToneCasual
	} else {
		profile.Tone = models.ToneNeutral
	}

	profile.FormattingPreferences = detectFormatting(combined)

	p.logger.Info("style: analysis complete",
		slog.Int("files", len(texts)),
		slog.Int("emoji_count", emojiCount),
		slog.String("tone", string(profile.Tone)),
		slog.Bool("uses_emojis", profile.UsesEmojis))

	return profile, nil
}

// Instructions renders the profile as one directive per line for the
// generation prompt. The last two directives are always present.
func Instructions(profile *models.StyleProfile) string {
	var directives []string

	if profile.UsesEmojis {
		directives = append(directives, "Use emojis naturally to express emotions (especially 😭, ☺️, 😅)")
	}
	if profile.Tone == models.ToneCasual {
		directives = append(directives,
			"Write in a very casual, conversational, stream-of-consciousness style",
			"Use informal language and internal thoughts")
	}
	if profile.HasFormatting(models.FormatHighlight) {
		directives = append(directives, "Use ==highlighted text== for important phrases or dialogue")
	}
	if profile.HasFormatting(models.FormatBlockquotes) {
		directives = append(directives, "Use blockquotes (>) for nested thoughts or context")
	}

	directives = append(directives,
		"Write detailed narrative storytelling with self-aware commentary",
		"Include specific details, internal feelings, and moment-by-moment descriptions")

	return strings.Join(directives, "\n")
}

// countEmojis counts maximal runs of adjacent emoji runes, so a burst
// like "😀😀😀" contributes one toward the threshold.
func countEmojis(text string) int {
	n := 0
	inRun := false
	for _, r := range text {
		if isEmojiRune(r) {
			if !inRun {
				n++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return n
}

// isEmojiRune reports whether r falls in the emoticon, pictograph,
// transport, or flag blocks.
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F, // emoticons
		r >= 0x1F300 && r <= 0x1F5FF, // symbols & pictographs
		r >= 0x1F680 && r <= 0x1F6FF, // transport & map symbols
		r >= 0x1F1E0 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	}
	return false
}

// detectFormatting runs presence checks for Markdown idioms the user
// already leans on.
func detectFormatting(text string) []string {
	var prefs []string
	if strings.Contains(text, "==") {
		prefs = append(prefs, models.FormatHighlight)
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, ">") {
			prefs = append(prefs, models.FormatBlockquotes)
			break
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "**") {
			prefs = append(prefs, models.FormatBold)
			break
		}
	}
	return prefs
}

// truncate cuts s after n runes, never mid-rune, so multi-byte
// characters survive intact.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
