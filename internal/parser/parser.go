// Package parser extracts frontmatter and the Logs section from daily notes.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	logsRe = regexp.MustCompile(`(?s)# Logs\n(.*)`)
	dateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.md$`)
)

// Result holds the output of parsing a daily note.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Logs        string
	HasLogs     bool
	Title       string
}

// Parse extracts frontmatter, body, and the Logs section from raw
// Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	logs, hasLogs := ExtractLogs(string(data))

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Logs:        logs,
		HasLogs:     hasLogs,
		Title:       deriveTitle(fm, body),
	}, nil
}

// ExtractLogs returns everything after the first "# Logs" heading.
// The second return value is false when the note has no Logs section.
func ExtractLogs(content string) (string, bool) {
	m := logsRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DateFromFilename returns the YYYY-MM-DD stem of a daily note filename,
// or empty string when the name does not follow the daily convention.
func DateFromFilename(name string) string {
	m := dateRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter; treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML; fall back to body only.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
