// Package journal renders daily notes and merges generated entries into
// the vault: a fresh template on first write, time-headed blocks under
// the Logs heading afterwards.
package journal

import (
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/starford/laguz/internal/storage"
)

var noteTmpl = template.Must(template.New("daily-note").Parse(dailyNoteTemplate))

// Merger writes journal content into date-named daily notes.
type Merger struct {
	store  storage.Provider
	logger *slog.Logger
	now    func() time.Time // injectable clock for the time heading
}

// NewMerger creates a Merger over the given vault.
func NewMerger(store storage.Provider, logger *slog.Logger) *Merger {
	return &Merger{store: store, logger: logger, now: time.Now}
}

// Write merges content into the daily note for date and returns the
// note's path relative to the vault root. A zero date means today.
//
// Three branches:
//   - no note for the date: render the full template with content under
//     the Logs heading;
//   - note exists and has a "# Logs" line: insert a time-headed block
//     directly after the heading, pushing earlier blocks down;
//   - note exists without a Logs heading: append content at the end.
//
// I/O errors propagate; there are no retries.
func (m *Merger) Write(content string, date time.Time) (string, error) {
	if date.IsZero() {
		date = m.now()
	}
	path := date.Format("2006-01-02") + ".md"

	if !m.store.Exists(path) {
		rendered, err := renderNote(content, date)
		if err != nil {
			return "", err
		}
		if err := m.store.Write(path, []byte(rendered)); err != nil {
			return "", err
		}
		m.logger.Info("journal: created daily note", slog.String("path", path))
		return path, nil
	}

	existing, err := m.store.Read(path)
	if err != nil {
		return "", err
	}

	text := string(existing)
	if strings.Contains(text, "# Logs\n") {
		stamp := m.now().Format("15:04")
		block := fmt.Sprintf("\n##### Time - %s\n%s\n", stamp, content)
		text = strings.Replace(text, "# Logs\n", "# Logs\n"+block, 1)
	} else {
		text += "\n\n" + content
	}

	if err := m.store.Write(path, []byte(text)); err != nil {
		return "", err
	}
	m.logger.Info("journal: appended to daily note", slog.String("path", path))
	return path, nil
}

// renderNote fills the daily-note template for the given date.
func renderNote(content string, date time.Time) (string, error) {
	data := templateData{
		DayName:       date.Format("Monday"),
		Date:          date.Format("2006-01-02"),
		FormattedDate: date.Format("Monday, January 02, 2006"),
		Yesterday:     date.AddDate(0, 0, -1).Format("2006-01-02"),
		Tomorrow:      date.AddDate(0, 0, 1).Format("2006-01-02"),
		Content:       content,
	}
	var b strings.Builder
	if err := noteTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("journal: render template: %w", err)
	}
	return b.String(), nil
}
