package index

// EntryIndex defines the interface for journal-history index operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type EntryIndex interface {
	UpsertEntry(e EntryRow, logs string) error
	DeleteEntry(path string) error
	GetEntry(path string) (*EntryRow, error)
	ListEntries(limit, offset int) ([]EntryRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies EntryIndex at compile time.
var _ EntryIndex = (*DB)(nil)
