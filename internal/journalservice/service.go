// Package journalservice coordinates the style profiler, conversation
// engine, entry merger, and journal index behind one serialized facade.
package journalservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/conversation"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/sse"
	"github.com/starford/laguz/internal/storage"
	"github.com/starford/laguz/internal/style"
)

// StyleState persists the "writing style analyzed" flag between runs.
type StyleState interface {
	StyleAnalyzed() bool
	MarkStyleAnalyzed(analyzed bool) error
}

// EntryDetail is the full representation of a daily note.
type EntryDetail struct {
	Path      string    `json:"path"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Logs      string    `json:"logs,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	Reply string `json:"reply"`
	Ended bool   `json:"ended"`
}

// WriteResult reports where a journal entry landed.
type WriteResult struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Created bool   `json:"created"`
}

// Service is the application facade. All engine access is serialized
// through its mutex: the engine itself supports only one in-flight call.
type Service struct {
	mu       sync.Mutex
	store    storage.Provider
	db       *index.DB
	engine   *conversation.Engine
	merger   *journal.Merger
	profiler *style.Profiler
	state    StyleState
	broker   *sse.Broker // may be nil (CLI surfaces)
	logger   *slog.Logger

	profile *models.StyleProfile // cached for the session
}

// NewService wires the facade. broker may be nil when no SSE surface is
// running.
func NewService(store storage.Provider, db *index.DB, engine *conversation.Engine,
	merger *journal.Merger, profiler *style.Profiler, state StyleState,
	broker *sse.Broker, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		db:       db,
		engine:   engine,
		merger:   merger,
		profiler: profiler,
		state:    state,
		broker:   broker,
		logger:   logger,
	}
}

// EnsureStyle makes sure the engine carries style instructions. The
// vault is analyzed when the persisted flag is unset; it is also
// re-analyzed on a fresh process whose flag is already set, because the
// profile itself is never persisted, only the flag is.
func (s *Service) EnsureStyle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureStyleLocked()
}

func (s *Service) ensureStyleLocked() error {
	if s.profile != nil {
		return nil
	}
	profile, err := s.profiler.Analyze()
	if err != nil {
		return err
	}
	s.profile = profile
	s.engine.SetStyleInstructions(style.Instructions(profile))

	if !s.state.StyleAnalyzed() {
		if err := s.state.MarkStyleAnalyzed(true); err != nil {
			s.logger.Warn("persist style flag failed", slog.String("error", err.Error()))
		}
	}
	return nil
}

// StyleProfile returns the session's style profile, analyzing on demand.
func (s *Service) StyleProfile() (*models.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureStyleLocked(); err != nil {
		return nil, err
	}
	return s.profile, nil
}

// ReanalyzeStyle discards the cached profile and runs a fresh analysis.
func (s *Service) ReanalyzeStyle() (*models.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	if err := s.ensureStyleLocked(); err != nil {
		return nil, err
	}
	return s.profile, nil
}

// StartConversation begins a new conversation and returns the greeting.
// Style analysis failures are non-fatal; the conversation starts with
// empty style instructions.
func (s *Service) StartConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStyleLocked(); err != nil {
		s.logger.Warn("style analysis failed, continuing without instructions",
			slog.String("error", err.Error()))
	}
	return s.engine.Start()
}

// ConversationActive reports whether a conversation is in progress
// (started and not yet ended). The reminder scheduler uses this to
// avoid discarding a live transcript.
func (s *Service) ConversationActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.engine.State()
	return st == conversation.StateGreeted || st == conversation.StateActive
}

// Turn processes one user message.
func (s *Service) Turn(ctx context.Context, userText string) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.engine.State() {
	case conversation.StateIdle:
		return nil, apperr.ErrConversationNotStarted
	case conversation.StateEnded:
		return nil, apperr.ErrConversationEnded
	}

	reply, ended := s.engine.Turn(ctx, userText)
	return &TurnResult{Reply: reply, Ended: ended}, nil
}

// FinishEntry generates the journal entry from the conversation, merges
// it into today's note, indexes the result, and resets the engine. The
// transcript is discarded once the entry is persisted.
func (s *Service) FinishEntry(ctx context.Context) (*WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() == conversation.StateIdle {
		return nil, apperr.ErrConversationNotStarted
	}

	content := s.engine.GenerateEntry(ctx)
	res, err := s.writeLocked(content, time.Time{})
	if err != nil {
		return nil, err
	}

	// Conversation state is not kept across entries.
	s.engine.Reset()

	return res, nil
}

// WriteEntry merges arbitrary content into the note for date (zero date
// means today). Used by the CLI write command and the MCP tool.
func (s *Service) WriteEntry(content string, date time.Time) (*WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(content, date)
}

func (s *Service) writeLocked(content string, date time.Time) (*WriteResult, error) {
	target := date
	if target.IsZero() {
		target = time.Now()
	}
	created := !s.store.Exists(target.Format("2006-01-02") + ".md")

	path, err := s.merger.Write(content, date)
	if err != nil {
		return nil, err
	}

	if data, readErr := s.store.Read(path); readErr == nil {
		if idxErr := index.IndexNote(s.db, path, data); idxErr != nil {
			s.logger.Warn("index entry failed",
				slog.String("path", path), slog.String("error", idxErr.Error()))
		}
	}

	if s.broker != nil {
		s.broker.PublishEntryWritten(path, created)
	}
	return &WriteResult{Path: path, Content: content, Created: created}, nil
}

// GetEntry reads the daily note for a YYYY-MM-DD date.
func (s *Service) GetEntry(date string) (*EntryDetail, error) {
	path := date + ".md"
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return &EntryDetail{
		Path:      path,
		Date:      parser.DateFromFilename(path),
		Content:   string(data),
		Logs:      res.Logs,
		UpdatedAt: time.Now(),
	}, nil
}

// ListEntries returns paginated index rows, newest first.
func (s *Service) ListEntries(limit, offset int) ([]index.EntryRow, int, error) {
	return s.db.ListEntries(limit, offset)
}

// Search performs full-text search over indexed Logs sections.
func (s *Service) Search(query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// InvalidateStyleCache drops the cached style profile so the next
// conversation re-analyzes the vault. Called when vault files change
// outside the service.
func (s *Service) InvalidateStyleCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}

// DB exposes the index database for the vault watcher.
func (s *Service) DB() *index.DB {
	return s.db
}

// Store exposes the vault storage for the vault watcher.
func (s *Service) Store() storage.Provider {
	return s.store
}
