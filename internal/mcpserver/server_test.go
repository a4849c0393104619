package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/laguz/internal/conversation"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/journalservice"
	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/settings"
	"github.com/starford/laguz/internal/style"
	"github.com/starford/laguz/internal/testutil"
)

type stubBackend struct{}

func (stubBackend) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return "ok", nil
}

func testServer(t *testing.T) *Server {
	t.Helper()

	vaultDir, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := settings.Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.CompleteFirstRun(vaultDir); err != nil {
		t.Fatal(err)
	}

	engine := conversation.NewEngine(stubBackend{}, logger)
	merger := journal.NewMerger(store, logger)
	profiler := style.NewProfiler(store, logger)
	svc := journalservice.NewService(store, db, engine, merger, profiler, st, nil, logger)
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "append_journal_entry":
		result, err = srv.appendJournalEntry(ctx, req)
	case "read_daily_note":
		result, err = srv.readDailyNote(ctx, req)
	case "search_journal":
		result, err = srv.searchJournal(ctx, req)
	case "list_entries":
		result, err = srv.listEntries(ctx, req)
	case "get_style_profile":
		result, err = srv.getStyleProfile(ctx, req)
	case "get_daily_note_format":
		result, err = srv.getDailyNoteFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAppendAndReadDailyNote(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "append_journal_entry", map[string]interface{}{
		"content": "Long run before breakfast.",
		"date":    "2024-01-15",
	})
	if text := resultText(r); text != "created: 2024-01-15.md" {
		t.Errorf("append result = %q", text)
	}

	r = callTool(t, srv, "read_daily_note", map[string]interface{}{"date": "2024-01-15"})
	text := resultText(r)
	if !strings.Contains(text, "# Logs") {
		t.Error("daily note missing Logs section")
	}
	if !strings.Contains(text, "Long run before breakfast.") {
		t.Errorf("daily note missing entry text: %q", text)
	}

	// Second append reports the existing note.
	r = callTool(t, srv, "append_journal_entry", map[string]interface{}{
		"content": "Evening stretch.",
		"date":    "2024-01-15",
	})
	if text := resultText(r); text != "appended: 2024-01-15.md" {
		t.Errorf("second append result = %q", text)
	}
}

func TestAppendInvalidDate(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "append_journal_entry", map[string]interface{}{
		"content": "text",
		"date":    "Jan 15",
	})
	if !r.IsError {
		t.Error("expected error for malformed date")
	}
}

func TestReadMissingDailyNote(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_daily_note", map[string]interface{}{"date": "1999-12-31"})
	if !r.IsError {
		t.Error("expected error for missing daily note")
	}
}

func TestSearchAndList(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "append_journal_entry", map[string]interface{}{
		"content": "Climbed the north ridge.",
		"date":    "2024-01-15",
	})

	r := callTool(t, srv, "search_journal", map[string]interface{}{"query": "ridge"})
	if !strings.Contains(resultText(r), "2024-01-15.md") {
		t.Errorf("search result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_entries", map[string]interface{}{})
	if resultText(r) != "2024-01-15.md" {
		t.Errorf("list result = %q", resultText(r))
	}
}

func TestStyleProfileTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_style_profile", map[string]interface{}{})
	if !strings.Contains(resultText(r), `"tone"`) {
		t.Errorf("style profile = %q", resultText(r))
	}
}

func TestDailyNoteFormatTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_daily_note_format", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "# Logs") {
		t.Error("format contract missing Logs section")
	}
	// The frontmatter sketch must agree with what rendered notes contain.
	for _, want := range []string{
		"journal: Personal",
		`EarlyWakeUp: "False"`,
		"productivity: 0",
		"journal-section: day",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("format contract missing frontmatter line %q", want)
		}
	}
}
