package conversation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/models"
)

// stubBackend returns canned replies (or an error) and records requests.
type stubBackend struct {
	reply    string
	err      error
	requests [][]llm.Message
}

func (s *stubBackend) Chat(_ context.Context, messages []llm.Message) (string, error) {
	s.requests = append(s.requests, messages)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testEngine(backend Backend) *Engine {
	return NewEngine(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStart_GreetingFromPool(t *testing.T) {
	e := testEngine(&stubBackend{})
	greeting := e.Start()

	found := false
	for _, g := range greetings {
		if g == greeting {
			found = true
		}
	}
	if !found {
		t.Errorf("greeting %q not in pool", greeting)
	}
	if e.State() != StateGreeted {
		t.Errorf("state = %v, want Greeted", e.State())
	}
	tr := e.Transcript()
	if len(tr) != 1 || tr[0].Role != models.RoleAssistant {
		t.Errorf("transcript = %v, want single assistant turn", tr)
	}
}

func TestStart_ResetsTranscript(t *testing.T) {
	e := testEngine(&stubBackend{reply: "nice!"})
	e.Start()
	e.Turn(context.Background(), "went hiking")
	e.Start()
	if len(e.Transcript()) != 1 {
		t.Errorf("transcript length after restart = %d, want 1", len(e.Transcript()))
	}
	if e.State() != StateGreeted {
		t.Errorf("state = %v, want Greeted", e.State())
	}
}

func TestTurn_EndSignals(t *testing.T) {
	cases := []string{
		"bye",
		"that's all",
		"THAT IS ALL",
		"I think I'm done for today",
		"nothing else happened",
		"ok finished",
	}
	for _, msg := range cases {
		e := testEngine(&stubBackend{})
		e.Start()
		reply, ended := e.Turn(context.Background(), msg)
		if !ended {
			t.Errorf("Turn(%q) ended = false, want true", msg)
			continue
		}
		if reply != ClosingLine {
			t.Errorf("Turn(%q) reply = %q, want closing line", msg, reply)
		}
		if e.State() != StateEnded {
			t.Errorf("state after %q = %v, want Ended", msg, e.State())
		}
	}
}

func TestTurn_NoEndSignal(t *testing.T) {
	b := &stubBackend{reply: "That sounds exciting! What happened next?"}
	e := testEngine(b)
	e.Start()

	reply, ended := e.Turn(context.Background(), "I visited the aquarium")
	if ended {
		t.Error("ended = true, want false")
	}
	if reply != b.reply {
		t.Errorf("reply = %q", reply)
	}
	if e.State() != StateActive {
		t.Errorf("state = %v, want Active", e.State())
	}
}

func TestTurn_BackendSeesSystemPromptAndHistory(t *testing.T) {
	b := &stubBackend{reply: "ok"}
	e := testEngine(b)
	e.Start()
	e.Turn(context.Background(), "first thing")
	e.Turn(context.Background(), "second thing")

	if len(b.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(b.requests))
	}
	last := b.requests[1]
	if last[0].Role != "system" || !strings.Contains(last[0].Content, "journaling companion") {
		t.Errorf("first message = %+v, want companion system prompt", last[0])
	}
	// greeting + user + assistant + user after the system prompt.
	if len(last) != 5 {
		t.Errorf("len(messages) = %d, want 5", len(last))
	}
	if last[len(last)-1].Content != "second thing" {
		t.Errorf("last message = %q", last[len(last)-1].Content)
	}
}

func TestTurn_BackendFailureReturnsApology(t *testing.T) {
	b := &stubBackend{err: errors.New("connection refused")}
	e := testEngine(b)
	e.Start()

	reply, ended := e.Turn(context.Background(), "today was long")
	if ended {
		t.Error("ended = true on backend failure")
	}
	if !strings.Contains(reply, "connection refused") {
		t.Errorf("apology %q does not embed the error", reply)
	}
	// The apology is recorded so the transcript keeps alternating.
	tr := e.Transcript()
	if tr[len(tr)-1].Role != models.RoleAssistant {
		t.Errorf("last turn role = %v, want assistant", tr[len(tr)-1].Role)
	}
}

func TestGenerateEntry_UsesUserTurnsAndStyle(t *testing.T) {
	b := &stubBackend{reply: "Dear diary, today I hiked."}
	e := testEngine(b)
	e.SetStyleInstructions("Write casually")
	e.Start()
	e.Turn(context.Background(), "went hiking")
	e.Turn(context.Background(), "saw a deer")
	e.Turn(context.Background(), "that's all")

	entry := e.GenerateEntry(context.Background())
	if entry != b.reply {
		t.Errorf("entry = %q", entry)
	}

	req := b.requests[len(b.requests)-1]
	if req[0].Role != "system" || !strings.Contains(req[0].Content, "skilled writer") {
		t.Errorf("system message = %+v", req[0])
	}
	prompt := req[1].Content
	if !strings.Contains(prompt, "Write casually") {
		t.Error("prompt missing style instructions")
	}
	if !strings.Contains(prompt, "went hiking\n\nsaw a deer") {
		t.Errorf("prompt missing blank-line joined user turns:\n%s", prompt)
	}
	if strings.Contains(prompt, ClosingLine) {
		t.Error("assistant turns leaked into the generation prompt")
	}
}

func TestGenerateEntry_FallbackOnBackendFailure(t *testing.T) {
	b := &stubBackend{reply: "ok"}
	e := testEngine(b)
	e.Start()
	e.Turn(context.Background(), "walked the dog")
	e.Turn(context.Background(), "bye")

	b.err = errors.New("model unavailable")
	entry := e.GenerateEntry(context.Background())
	if !strings.Contains(entry, "walked the dog") {
		t.Errorf("fallback entry = %q, want raw user content", entry)
	}
	// "bye" is a user turn too; the fallback keeps it.
	if !strings.Contains(entry, "bye") {
		t.Errorf("fallback entry = %q, want every user turn", entry)
	}
}
