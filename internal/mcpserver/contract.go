package mcpserver

// DailyNoteFormat describes the canonical daily note structure so that
// LLM consumers know where appended journal text will land.
const DailyNoteFormat = `# Laguz Daily Note Format

Daily notes are named ` + "`" + `YYYY-MM-DD.md` + "`" + ` and live flat in the vault root.

## Structure

` + "```" + `markdown
---
cssclasses:
  - "<day name>"
  - cards
  - daily
reading: false
EarlyWakeUp: "False"
productivity: 0
journal: Personal
journal-start-date: YYYY-MM-DD
journal-end-date: YYYY-MM-DD
journal-section: day
---

<queries and habit trackers>

# New Tasks

# Logs
` + "```" + `

## Rules

1. **Never create a daily note by hand.** The ` + "`" + `append_journal_entry` + "`" + ` tool renders
   the template automatically when the note for that date does not exist yet.
2. **Appended entries land under ` + "`" + `# Logs` + "`" + `.** Each append inserts a
   ` + "`" + `##### Time - HH:MM` + "`" + ` heading followed by the entry text, newest first.
3. **Entries are plain Markdown.** Write in the user's own voice; no extra
   headings or metadata around the entry text.
4. **Dates** use ` + "`" + `YYYY-MM-DD` + "`" + `; the file name and the ` + "`" + `date` + "`" + ` argument match.
5. **Encoding** is UTF-8 with a trailing newline.

## Example append

Calling ` + "`" + `append_journal_entry` + "`" + ` with content ` + "`" + `Long run before breakfast.` + "`" + ` at 07:45
produces this block under ` + "`" + `# Logs` + "`" + `:

` + "```" + `markdown
# Logs

##### Time - 07:45
Long run before breakfast.
` + "```" + `
`
