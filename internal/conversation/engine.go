// Package conversation implements the turn-based journaling conversation:
// a state machine over a transcript, end-signal detection, and final
// entry generation conditioned on style instructions.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/models"
)

// State of the engine.
type State int

// Engine states. Start moves to Greeted from anywhere; a recognized end
// signal moves to Ended.
const (
	StateIdle State = iota
	StateGreeted
	StateActive
	StateEnded
)

// Backend is the language-model interface the engine talks to.
type Backend interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Engine owns a single conversation's transcript. It is not safe for
// concurrent use; callers serialize access (the service facade does).
type Engine struct {
	backend           Backend
	logger            *slog.Logger
	state             State
	transcript        []models.Turn
	styleInstructions string
}

// NewEngine creates an idle engine over the given backend.
func NewEngine(backend Backend, logger *slog.Logger) *Engine {
	return &Engine{backend: backend, logger: logger, state: StateIdle}
}

// SetStyleInstructions stores the directive text used by GenerateEntry.
// An empty string is valid (no style conditioning).
func (e *Engine) SetStyleInstructions(text string) {
	e.styleInstructions = text
}

// State returns the current conversation state.
func (e *Engine) State() State {
	return e.state
}

// Transcript returns a copy of the transcript so far.
func (e *Engine) Transcript() []models.Turn {
	out := make([]models.Turn, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// Reset discards the transcript and returns the engine to Idle. Style
// instructions survive a reset; they belong to the session, not the
// conversation.
func (e *Engine) Reset() {
	e.transcript = e.transcript[:0]
	e.state = StateIdle
}

// Start begins a new conversation, discarding any previous transcript,
// and returns a randomly chosen greeting. Valid from any state.
func (e *Engine) Start() string {
	e.transcript = e.transcript[:0]
	greeting := greetings[rand.Intn(len(greetings))]
	e.transcript = append(e.transcript, models.Turn{Role: models.RoleAssistant, Text: greeting})
	e.state = StateGreeted
	e.logger.Info("conversation started")
	return greeting
}

// Turn processes one user message. When the message carries an end
// signal the fixed closing line is returned with ended=true and the
// conversation moves to Ended. Otherwise the backend produces the next
// assistant reply. Backend failures surface as an apology message, never
// as an error; the apology is recorded in the transcript so the
// alternation invariant holds.
func (e *Engine) Turn(ctx context.Context, userText string) (string, bool) {
	e.transcript = append(e.transcript, models.Turn{Role: models.RoleUser, Text: userText})

	if containsEndSignal(userText) {
		e.transcript = append(e.transcript, models.Turn{Role: models.RoleAssistant, Text: ClosingLine})
		e.state = StateEnded
		e.logger.Info("conversation ended", slog.Int("turns", len(e.transcript)))
		return ClosingLine, true
	}
	e.state = StateActive

	messages := make([]llm.Message, 0, len(e.transcript)+1)
	messages = append(messages, llm.Message{Role: "system", Content: chatSystemPrompt})
	for _, t := range e.transcript {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Text})
	}

	reply, err := e.backend.Chat(ctx, messages)
	if err != nil {
		e.logger.Warn("conversation turn failed", slog.String("error", err.Error()))
		apology := fmt.Sprintf("Sorry, I'm having trouble connecting. Make sure Ollama is running. Error: %v", err)
		e.transcript = append(e.transcript, models.Turn{Role: models.RoleAssistant, Text: apology})
		return apology, false
	}

	e.transcript = append(e.transcript, models.Turn{Role: models.RoleAssistant, Text: reply})
	return reply, false
}

// GenerateEntry turns the user's side of the conversation into a
// first-person journal entry. On backend failure the concatenated user
// messages are returned as-is so the day's content is never lost.
func (e *Engine) GenerateEntry(ctx context.Context) string {
	content := e.conversationContent()

	prompt := fmt.Sprintf(generationPromptFormat, e.styleInstructions, content)
	entry, err := e.backend.Chat(ctx, []llm.Message{
		{Role: "system", Content: writerSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		e.logger.Warn("entry generation failed, falling back to raw conversation",
			slog.String("error", err.Error()))
		return content
	}
	return entry
}

// conversationContent joins every user turn with blank lines.
func (e *Engine) conversationContent() string {
	var parts []string
	for _, t := range e.transcript {
		if t.Role == models.RoleUser {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func containsEndSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range endSignals {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
