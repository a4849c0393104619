package journal

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/laguz/internal/storage"
)

func testMerger(t *testing.T) (*Merger, storage.Provider) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	m := NewMerger(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC) }
	return m, store
}

var monday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestWrite_NewNoteRendersTemplate(t *testing.T) {
	m, store := testMerger(t)

	path, err := m.Write("Had a great day!", monday)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != "2024-01-15.md" {
		t.Errorf("path = %q", path)
	}

	data, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"journal-start-date: 2024-01-15",
		"journal-end-date: 2024-01-15",
		`- "Monday"`,
		"### _Monday, January 15, 2024_",
		"[[<2024-01-14> | Yesterday]] | [[<2024-01-16> | Tomorrow ]]",
		"due 2024-01-15",
		"![[Calendar View]]",
		"INPUT[progressBar(title(Productivity),minValue(0),maxValue(100)):productivity]",
		"# New Tasks",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered note missing %q", want)
		}
	}

	if n := strings.Count(text, "# Logs"); n != 1 {
		t.Errorf("count of %q = %d, want 1", "# Logs", n)
	}
	idx := strings.Index(text, "# Logs")
	after := text[idx:]
	if !strings.Contains(after, "Had a great day!") {
		t.Error("content not under the Logs heading")
	}
}

func TestWrite_TemplateByteFidelity(t *testing.T) {
	m, store := testMerger(t)
	// Early-month date exercises the zero-padded day.
	_, err := m.Write("entry", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := store.Read("2024-01-05.md")
	text := string(data)

	if !strings.Contains(text, "### _Friday, January 05, 2024_") {
		t.Error("formatted date should zero-pad the day")
	}

	// These lines carry significant trailing spaces.
	for _, want := range []string{
		"#dailyjournal \n",
		">>[!todo]- Tasks Due Today \n",
		">>```tasks not done \n",
		">>due 2024-01-05 \n",
		">>not done \n",
		">>due < 2024-01-05 \n",
		"> [!multi-column]\n> \n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered note missing %q", want)
		}
	}
}

func TestWrite_SecondWriteInsertsAfterLogs(t *testing.T) {
	m, store := testMerger(t)

	if _, err := m.Write("Had a great day!", monday); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	path, err := m.Write("Second note", monday)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}

	data, _ := store.Read(path)
	text := string(data)

	if !strings.Contains(text, "Had a great day!") || !strings.Contains(text, "Second note") {
		t.Fatal("one of the entries is missing")
	}
	if !strings.Contains(text, "##### Time - 21:30\nSecond note") {
		t.Error("second entry missing its time heading")
	}
	// Newest block sits right after the heading, before the first entry.
	if strings.Index(text, "Second note") > strings.Index(text, "Had a great day!") {
		t.Error("second entry should precede the first in file order")
	}
	first := strings.Index(text, "# Logs")
	second := strings.Index(text, "Second note")
	if second < first {
		t.Error("inserted block appears before the Logs heading")
	}
}

func TestWrite_ThirdWritePushesOlderBlocksDown(t *testing.T) {
	m, store := testMerger(t)
	_, _ = m.Write("first", monday)
	_, _ = m.Write("second", monday)
	_, _ = m.Write("third", monday)

	data, _ := store.Read("2024-01-15.md")
	text := string(data)
	if !(strings.Index(text, "third") < strings.Index(text, "second") &&
		strings.Index(text, "second") < strings.Index(text, "first")) {
		t.Errorf("blocks out of order:\n%s", text)
	}
}

func TestWrite_ExistingNoteWithoutLogsAppends(t *testing.T) {
	m, store := testMerger(t)
	_ = store.Write("2024-01-15.md", []byte("freeform note"))

	path, err := m.Write("Evening thoughts", monday)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := store.Read(path)
	text := string(data)

	if !strings.HasSuffix(text, "\n\nEvening thoughts") {
		t.Errorf("content not appended with blank-line separator: %q", text)
	}
	if strings.Contains(text, "##### Time -") {
		t.Error("append branch must not add a time heading")
	}
}

func TestWrite_ZeroDateUsesClock(t *testing.T) {
	m, _ := testMerger(t)
	path, err := m.Write("now-ish", time.Time{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != "2024-01-15.md" {
		t.Errorf("path = %q, want clock date", path)
	}
}

func TestWrite_ContentVerbatim(t *testing.T) {
	m, store := testMerger(t)
	content := "Line one\n\n> quoted\n==highlight== and **bold** 😀"
	path, _ := m.Write(content, monday)
	data, _ := store.Read(path)
	if !strings.Contains(string(data), content) {
		t.Error("content not preserved verbatim")
	}
}
