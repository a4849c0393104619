package api

import (
	"time"

	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/journalservice"
)

// StartConversationResponse is returned when a conversation opens.
type StartConversationResponse struct {
	Greeting string `json:"greeting" example:"Hey! How was your day?" validate:"required"`
}

// TurnRequest is the request body for a conversation turn.
type TurnRequest struct {
	Text string `json:"text" example:"Went for a long run today" validate:"required"`
}

// TurnResponse is the assistant's reply to one turn (aliased from the domain layer).
type TurnResponse = journalservice.TurnResult

// WriteEntryRequest is the request body for a direct journal write.
type WriteEntryRequest struct {
	Content string `json:"content" example:"Quick note before bed" validate:"required"`
	Date    string `json:"date,omitempty" example:"2024-01-15"`
}

// WriteEntryResponse reports the written daily note (aliased from the domain layer).
type WriteEntryResponse = journalservice.WriteResult

// EntryDetail is the full daily note response type (aliased from the domain layer).
type EntryDetail = journalservice.EntryDetail

// EntryListItem is a lightweight item in a list response.
type EntryListItem struct {
	Path      string    `json:"path" example:"2024-01-15.md" validate:"required"`
	Date      string    `json:"date" example:"2024-01-15"`
	Title     string    `json:"title" example:"2024-01-15"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryListResponse wraps paginated entry listings.
type EntryListResponse struct {
	Entries []EntryListItem `json:"entries" validate:"required"`
	Total   int             `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"2024-01-15.md" validate:"required"`
	Date    string `json:"date" example:"2024-01-15"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// SettingsResponse is the user-facing view of the settings document.
// The auth token is never echoed back.
type SettingsResponse struct {
	VaultPath            string `json:"vault_path" example:"/home/me/vault"`
	NotificationTime     string `json:"notification_time" example:"21:00"`
	OllamaHost           string `json:"ollama_host" example:"http://localhost:11434"`
	OllamaModel          string `json:"ollama_model" example:"tinyllama"`
	FirstRun             bool   `json:"first_run"`
	WritingStyleAnalyzed bool   `json:"writing_style_analyzed"`
}

// UpdateSettingsRequest carries a partial settings update. Nil fields
// are left untouched.
type UpdateSettingsRequest struct {
	VaultPath        *string `json:"vault_path,omitempty"`
	NotificationTime *string `json:"notification_time,omitempty"`
	OllamaHost       *string `json:"ollama_host,omitempty"`
	OllamaModel      *string `json:"ollama_model,omitempty"`
}

func entryListItems(rows []index.EntryRow) []EntryListItem {
	items := make([]EntryListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, EntryListItem{
			Path:      row.Path,
			Date:      row.Date,
			Title:     row.Title,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return items
}

func searchResults(hits []index.SearchResult) []SearchResult {
	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{
			Path:    hit.Path,
			Date:    hit.Date,
			Snippet: hit.Snippet,
		})
	}
	return results
}
