package index

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed daily notes are parsed and upserted
//   - notes removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}
		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexNote(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: indexed", slog.String("path", m.Path))
	}

	// Remove index entries whose files are gone.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteEntry(p); err != nil {
				logger.Warn("sync: delete failed",
					slog.String("path", p), slog.String("error", err.Error()))
				continue
			}
			logger.Debug("sync: removed stale", slog.String("path", p))
		}
	}

	return nil
}

// IndexNote parses raw note bytes and upserts the result.
func IndexNote(db *DB, path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	return db.UpsertEntry(EntryRow{
		Path:      path,
		Date:      parser.DateFromFilename(path),
		Title:     res.Title,
		Checksum:  checksum(data),
		UpdatedAt: time.Now(),
	}, res.Logs)
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
