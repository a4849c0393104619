// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/laguz/internal/models"

// Provider is the interface for vault file operations. Laguz never
// deletes or renames daily notes, so the surface is read/write only.
type Provider interface {
	// List returns metadata for every .md file in the vault root
	// (non-recursive), sorted by filename descending so daily notes
	// come back newest first.
	List() ([]models.EntryMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Root returns the absolute vault root directory.
	Root() string
}
