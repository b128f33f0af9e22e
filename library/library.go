package library

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aouyang1/theframe/store"
)

// Library answers identifier queries against the media index.
type Library struct {
	db   *store.Database
	root string
}

func New(db *store.Database, root string) *Library {
	return &Library{db: db, root: root}
}

func (l *Library) Root() string {
	return l.root
}

// Query returns up to maxCount identifiers, newest first. An unavailable index yields an
// empty list.
func (l *Library) Query(maxCount int) []PhotoID {
	if maxCount <= 0 {
		return nil
	}
	photos, err := l.db.GetRecentPhotos(maxCount)
	if err != nil {
		slog.Warn("media index unavailable, returning empty photo list", "error", err)
		return nil
	}

	ids := make([]PhotoID, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, PhotoID(p.PhotoID))
	}
	return ids
}

// Count is the number of indexed photos, or 0 when the index is unavailable.
func (l *Library) Count() int {
	n, err := l.db.GetPhotoCount()
	if err != nil {
		slog.Warn("media index unavailable", "error", err)
		return 0
	}
	return n
}

// Resolve maps an identifier back to the absolute path of its file.
func (l *Library) Resolve(id PhotoID) (string, error) {
	photo, err := l.db.GetPhoto(id.String())
	if err != nil {
		return "", fmt.Errorf("resolve photo: %w", err)
	}
	return filepath.Join(l.root, filepath.FromSlash(photo.Path)), nil
}
