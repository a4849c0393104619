package settings

import (
	"sync"

	pkgconfig "github.com/starford/laguz/pkg/config"
)

// Store owns the persisted settings document. Every mutation is
// written back to disk immediately, matching the read-on-startup /
// write-on-set contract of the settings file.
type Store struct {
	mu       sync.Mutex
	path     string
	settings *Settings
}

// Load opens (or initializes) the settings document at path.
// A missing file is created with defaults and first_run set.
func Load(path string) (*Store, error) {
	st := &Store{path: path, settings: NewDefault()}
	if !pkgconfig.Exists(path) {
		if err := pkgconfig.Save(path, st.settings); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err := pkgconfig.Load(path, st.settings); err != nil {
		return nil, err
	}
	return st, nil
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return *st.settings
}

// Update applies fn to the settings and persists the result. fn runs
// under the store lock; validation failures leave the previous document
// on disk and in memory.
func (st *Store) Update(fn func(*Settings)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := *st.settings
	fn(&next)
	if err := pkgconfig.Save(st.path, &next); err != nil {
		return err
	}
	st.settings = &next
	return nil
}

// StyleAnalyzed reports the persisted writing_style_analyzed flag.
func (st *Store) StyleAnalyzed() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.settings.WritingStyleAnalyzed
}

// MarkStyleAnalyzed persists the writing_style_analyzed flag.
func (st *Store) MarkStyleAnalyzed(analyzed bool) error {
	return st.Update(func(s *Settings) { s.WritingStyleAnalyzed = analyzed })
}

// CompleteFirstRun records the vault path and clears the first_run flag.
func (st *Store) CompleteFirstRun(vaultPath string) error {
	return st.Update(func(s *Settings) {
		s.VaultPath = vaultPath
		s.FirstRun = false
	})
}
