// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Laguz journal tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/laguz/internal/journalservice"
)

// Server wraps the MCP server with Laguz tools.
type Server struct {
	mcp *server.MCPServer
	svc *journalservice.Service
}

// New creates a new MCP server with all Laguz tools registered.
func New(svc *journalservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("append_journal_entry",
		mcp.WithDescription("Append content to a daily note. The note is created from the "+
			"daily template when missing; otherwise the content lands under the Logs section "+
			"with a timestamp heading. Read the format first via the get_daily_note_format "+
			"tool or the laguz://daily-note-format resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Journal text to append")),
		mcp.WithString("date", mcp.Description("Target date as YYYY-MM-DD (defaults to today)")),
	), s.appendJournalEntry)

	s.mcp.AddTool(mcp.NewTool("read_daily_note",
		mcp.WithDescription("Read the full content of the daily note for a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
	), s.readDailyNote)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Full-text search through journal log content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchJournal)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List indexed daily notes, newest first."),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("get_style_profile",
		mcp.WithDescription("Get the user's writing style profile derived from past entries."),
	), s.getStyleProfile)

	s.mcp.AddTool(mcp.NewTool("get_daily_note_format",
		mcp.WithDescription("Returns the canonical Laguz daily note format. "+
			"Call this before appending entries to understand the structure."),
	), s.getDailyNoteFormat)

	// Resource: daily note format contract.
	s.mcp.AddResource(
		mcp.NewResource("laguz://daily-note-format", "Daily Note Format",
			mcp.WithResourceDescription("Canonical daily note structure that journal entries land in."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDailyNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) appendJournalEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var date time.Time
	if raw, err := req.RequireString("date"); err == nil && raw != "" {
		parsed, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: want YYYY-MM-DD", raw)), nil
		}
		date = parsed
	}

	result, err := s.svc.WriteEntry(content, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result.Created {
		return mcp.NewToolResultText(fmt.Sprintf("created: %s", result.Path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("appended: %s", result.Path)), nil
}

func (s *Server) readDailyNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.GetEntry(date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", date)), nil
	}
	return mcp.NewToolResultText(entry.Content), nil
}

func (s *Server) searchJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, _, err := s.svc.ListEntries(0, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, row := range rows {
		paths = append(paths, row.Path)
	}
	if len(paths) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) getStyleProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := s.svc.StyleProfile()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getDailyNoteFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DailyNoteFormat), nil
}

func (s *Server) readDailyNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "laguz://daily-note-format",
			MIMEType: "text/markdown",
			Text:     DailyNoteFormat,
		},
	}, nil
}
