package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/laguz/internal/journalservice"
	"github.com/starford/laguz/internal/settings"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// onSettingsChanged, if non-nil, runs after every successful settings update.
func NewRouter(svc *journalservice.Service, st *settings.Store, authEnabled bool, token string,
	sseHandler http.Handler, onSettingsChanged func(settings.Settings)) chi.Router {
	h := NewHandler(svc, st, onSettingsChanged)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Conversation lifecycle.
	r.Post("/conversation", h.StartConversation)
	r.Post("/conversation/turns", h.Turn)
	r.Post("/conversation/entry", h.FinishEntry)

	// Daily notes.
	r.Get("/entries", h.ListEntries)
	r.Post("/entries", h.CreateEntry)
	r.Get("/entries/{date}", h.GetEntry)

	// Search.
	r.Get("/search", h.Search)

	// Writing style.
	r.Get("/style", h.GetStyle)
	r.Post("/style/analyze", h.AnalyzeStyle)

	// Settings.
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
