package api

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/journalservice"
	"github.com/starford/laguz/internal/settings"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Handler holds API route handlers.
type Handler struct {
	svc      *journalservice.Service
	settings *settings.Store

	// onSettingsChanged runs after a successful settings update so the
	// host can react (reschedule the reminder, for example). May be nil.
	onSettingsChanged func(settings.Settings)
}

// NewHandler creates a new Handler.
func NewHandler(svc *journalservice.Service, st *settings.Store, onSettingsChanged func(settings.Settings)) *Handler {
	return &Handler{svc: svc, settings: st, onSettingsChanged: onSettingsChanged}
}

// StartConversation handles POST /api/conversation.
//
//	@Summary		Start a journaling conversation
//	@Tags			conversation
//	@Produce		json
//	@Success		200	{object}	StartConversationResponse
//	@Security		BearerAuth
//	@Router			/conversation [post]
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	greeting := h.svc.StartConversation()
	writeJSON(w, http.StatusOK, StartConversationResponse{Greeting: greeting})
}

// Turn handles POST /api/conversation/turns.
//
//	@Summary		Send one user turn and get the assistant reply
//	@Tags			conversation
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TurnRequest	true	"User turn"
//	@Success		200		{object}	TurnResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/conversation/turns [post]
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	result, err := h.svc.Turn(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrConversationNotStarted):
			writeJSON(w, http.StatusConflict, errorBody("no conversation in progress"))
		case errors.Is(err, apperr.ErrConversationEnded):
			writeJSON(w, http.StatusConflict, errorBody("conversation already ended"))
		default:
			slog.Error("turn failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// FinishEntry handles POST /api/conversation/entry.
//
//	@Summary		Generate and save the journal entry for the current conversation
//	@Tags			conversation
//	@Produce		json
//	@Success		201		{object}	WriteEntryResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/conversation/entry [post]
func (h *Handler) FinishEntry(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.FinishEntry(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrConversationNotStarted) {
			writeJSON(w, http.StatusConflict, errorBody("no conversation in progress"))
			return
		}
		slog.Error("finish entry failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List indexed daily notes, newest first
//	@Tags			entries
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	EntryListResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	rows, total, err := h.svc.ListEntries(limit, offset)
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{
		Entries: entryListItems(rows),
		Total:   total,
	})
}

// GetEntry handles GET /api/entries/{date}.
//
//	@Summary		Get the daily note for a date
//	@Tags			entries
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	EntryDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{date} [get]
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !dateRe.MatchString(date) {
		writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
		return
	}
	entry, err := h.svc.GetEntry(date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /api/entries.
//
//	@Summary		Append content to a daily note directly
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			body	body		WriteEntryRequest	true	"Entry content and optional date"
//	@Success		201		{object}	WriteEntryResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries [post]
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req WriteEntryRequest
	if !decodeJSON(w, r, 10<<20, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}
	result, err := h.svc.WriteEntry(req.Content, date)
	if err != nil {
		slog.Error("write entry failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across journal logs
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: searchResults(hits)})
}

// GetStyle handles GET /api/style.
//
//	@Summary		Get the current writing style profile
//	@Tags			style
//	@Produce		json
//	@Success		200	{object}	models.StyleProfile
//	@Security		BearerAuth
//	@Router			/style [get]
func (h *Handler) GetStyle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.StyleProfile()
	if err != nil {
		slog.Error("style profile failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// AnalyzeStyle handles POST /api/style/analyze.
//
//	@Summary		Re-analyze the vault and rebuild the style profile
//	@Tags			style
//	@Produce		json
//	@Success		200	{object}	models.StyleProfile
//	@Security		BearerAuth
//	@Router			/style/analyze [post]
func (h *Handler) AnalyzeStyle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ReanalyzeStyle()
	if err != nil {
		slog.Error("style analysis failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetSettings handles GET /api/settings.
//
//	@Summary		Get the current settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse(h.settings.Snapshot()))
}

// UpdateSettings handles PUT /api/settings.
//
//	@Summary		Update settings (partial)
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateSettingsRequest	true	"Fields to change"
//	@Success		200		{object}	SettingsResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}
	err := h.settings.Update(func(s *settings.Settings) {
		if req.VaultPath != nil {
			s.VaultPath = *req.VaultPath
		}
		if req.NotificationTime != nil {
			s.NotificationTime = *req.NotificationTime
		}
		if req.OllamaHost != nil {
			s.OllamaHost = *req.OllamaHost
		}
		if req.OllamaModel != nil {
			s.OllamaModel = *req.OllamaModel
		}
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	snap := h.settings.Snapshot()
	if h.onSettingsChanged != nil {
		h.onSettingsChanged(snap)
	}
	writeJSON(w, http.StatusOK, settingsResponse(snap))
}

func settingsResponse(s settings.Settings) SettingsResponse {
	return SettingsResponse{
		VaultPath:            s.VaultPath,
		NotificationTime:     s.NotificationTime,
		OllamaHost:           s.OllamaHost,
		OllamaModel:          s.OllamaModel,
		FirstRun:             s.FirstRun,
		WritingStyleAnalyzed: s.WritingStyleAnalyzed,
	}
}
