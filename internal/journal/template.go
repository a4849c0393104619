package journal

// dailyNoteTemplate is the fixed daily-note layout. It must stay
// byte-compatible with the notes already in user vaults: Obsidian
// plugins (tasks, meta-bind, calendar) key off the exact block syntax,
// and the merge logic keys off the single "# Logs" heading. Several
// lines carry significant trailing spaces.
const dailyNoteTemplate = `---
cssclasses:
  - "{{.DayName}}"
  - cards
  - daily
reading: false
EarlyWakeUp: "False"
productivity: 0
journal: Personal
journal-start-date: {{.Date}}
journal-end-date: {{.Date}}
journal-section: day
---
#dailyjournal ` + `
# DAILY NOTE
---
### _{{.FormattedDate}}_
## Daily Journal
## <font color="#d99694">Essence: </font>

[[<{{.Yesterday}}> | Yesterday]] | [[<{{.Tomorrow}}> | Tomorrow ]]

>[!multi-column]
>>[!todo]- Tasks Due Today ` + `
>>` + "```" + `tasks not done ` + `
>>due {{.Date}} ` + `
>>hide due date` + "```" + `
>
>>[!danger]- Overdue Tasks
>>` + "```" + `tasks
>>not done ` + `
>>due < {{.Date}} ` + `
>>hide due date` + "```" + `
>
>>[!success]- Completed Tasks
>>` + "```" + `tasks
>>done {{.Date}}` + "```" + `

![[Calendar View]]

---

#### Habits Checkouts


> [!multi-column]
> ` + `
>>` + "```" + `meta-bind
>>INPUT[progressBar(title(Productivity),minValue(0),maxValue(100)):productivity]
>>` + "```" + `



>>[!important] Other Habits
>>> [!multi-column]
>>>` + "```" + `meta-bind
>>>INPUT[toggle(title(Early Wake Up),offValue(false), onValue(true)):EarlyWakeUp]
>>>` + "```" + `
>>>
>>>` + "```" + `meta-bind
>>>INPUT[toggle(title(Reading),offValue(false), onValue(true)):reading]
>>>` + "```" + `



---
# New Tasks

# Logs
{{.Content}}
`

// templateData carries the per-date substitutions for dailyNoteTemplate.
type templateData struct {
	DayName       string // e.g. Monday
	Date          string // YYYY-MM-DD
	FormattedDate string // e.g. Monday, January 15, 2024
	Yesterday     string // YYYY-MM-DD of the previous day
	Tomorrow      string // YYYY-MM-DD of the next day
	Content       string
}
