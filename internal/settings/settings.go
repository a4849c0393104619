package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Settings is the persisted per-user configuration. It is read once at
// startup and written back on every change.
type Settings struct {
	VaultPath            string `json:"vault_path"`
	NotificationTime     string `json:"notification_time"`
	OllamaHost           string `json:"ollama_host"`
	OllamaModel          string `json:"ollama_model"`
	FirstRun             bool   `json:"first_run"`
	WritingStyleAnalyzed bool   `json:"writing_style_analyzed"`

	SQLitePath string       `json:"sqlite_path"`
	LogLevel   slog.Level   `json:"log_level"`
	HTTP       HTTPSettings `json:"http"`
	Auth       AuthSettings `json:"auth"`
}

// Validate validates the settings document.
func (s *Settings) Validate() error {
	if err := validation.ValidateStruct(s,
		validation.Field(&s.NotificationTime, validation.Required,
			validation.Match(timeOfDayRe).Error("must be HH:MM")),
		validation.Field(&s.OllamaHost, validation.Required),
		validation.Field(&s.OllamaModel, validation.Required),
	); err != nil {
		return err
	}
	// The vault path is only demanded once setup has completed; the
	// first run legitimately starts without one.
	if !s.FirstRun && s.VaultPath == "" {
		return fmt.Errorf("vault_path is required after first run")
	}
	if err := s.HTTP.Validate(); err != nil {
		return err
	}
	return s.Auth.Validate()
}

// HTTPSettings holds HTTP server configuration.
type HTTPSettings struct {
	Port int `json:"port"`
}

// Address returns HTTP server address.
func (s *HTTPSettings) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Validate validates the HTTP settings.
func (s *HTTPSettings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AuthSettings holds API authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication, suitable for a local desktop.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthSettings struct {
	Mode  string `json:"mode"`
	Token string `json:"token"`
}

// Validate validates the auth settings.
func (s *AuthSettings) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if s.Mode == "" {
		s.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(s,
		validation.Field(&s.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if s.Mode == AuthModeToken && s.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (s *AuthSettings) AuthEnabled() bool {
	return s.Mode == AuthModeToken
}

// DefaultPath returns the per-user settings location
// (~/.laguz/config.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".laguz", "config.json")
}

// NewDefault returns Settings with sensible default values.
// The journal index database sits next to the settings file.
func NewDefault() *Settings {
	return &Settings{
		VaultPath:            "",
		NotificationTime:     "21:00",
		OllamaHost:           "http://localhost:11434",
		OllamaModel:          "tinyllama",
		FirstRun:             true,
		WritingStyleAnalyzed: false,
		SQLitePath:           filepath.Join(filepath.Dir(DefaultPath()), "laguz.db"),
		LogLevel:             slog.LevelInfo,
		HTTP: HTTPSettings{
			Port: 8343,
		},
		Auth: AuthSettings{
			Mode: AuthModeDisabled,
		},
	}
}
