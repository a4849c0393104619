package models

import "time"

// Role tags a conversation turn.
type Role string

// Turn roles. The backend additionally understands a "system" role, but
// system prompts never enter the transcript itself.
const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Turn is one utterance in a conversation transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// EntryMetadata is a lightweight representation of a daily note returned
// by list operations.
type EntryMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
