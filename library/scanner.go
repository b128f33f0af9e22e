package library

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aouyang1/theframe/store"
	"github.com/aouyang1/theframe/util"
	mapset "github.com/deckarep/golang-set/v2"
)

// cloudDir is the library subdirectory that the remote sync mirrors into.
const cloudDir = "cloud"

// Scanner keeps the media index in step with the photos on disk.
type Scanner struct {
	root     string
	db       *store.Database
	interval time.Duration

	mu           sync.Mutex
	trackedFiles mapset.Set[string]

	Updated chan bool
}

func NewScanner(db *store.Database, root string, interval time.Duration) (*Scanner, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Scanner{
		root:         root,
		db:           db,
		interval:     interval,
		trackedFiles: mapset.NewSet[string](),
		Updated:      make(chan bool, 1),
	}, nil
}

type fileInfo struct {
	relPath string
	path    string
	info    fs.FileInfo
}

func (s *Scanner) getCurrentFiles() (mapset.Set[string], map[string]fileInfo, error) {
	currentFiles := mapset.NewSet[string]()
	infos := make(map[string]fileInfo)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			// unreadable subdirectory, skip it
			return nil
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !util.IsSupported(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		currentFiles.Add(rel)
		infos[rel] = fileInfo{relPath: rel, path: path, info: info}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return currentFiles, infos, nil
}

func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial scan
	s.Scan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan()
		}
	}
}

// Scan registers new photos, deregisters vanished ones, and signals Updated on change.
func (s *Scanner) Scan() {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentFiles, infos, err := s.getCurrentFiles()
	if err != nil {
		slog.Warn("error reading library directory", "path", s.root, "error", err)
		return
	}

	registered, err := s.registeredPaths()
	if err != nil {
		slog.Warn("error getting registered photos from index", "error", err)
		return
	}

	toRegister := currentFiles.Difference(registered).ToSlice()
	toDeregister := registered.Difference(currentFiles).ToSlice()

	for _, rel := range toRegister {
		fi := infos[rel]
		photo := store.Photo{
			PhotoID:   NewPhotoID(rel).String(),
			Path:      rel,
			Source:    sourceOf(rel),
			DateAdded: captureDate(fi.path, fi.info),
		}
		if err := s.db.UpsertPhoto(photo); err != nil {
			slog.Warn("error while registering photo", "path", rel, "error", err)
			continue
		}
		slog.Debug("registered photo", "path", rel, "photo_id", photo.PhotoID)
	}

	if len(toDeregister) > 0 {
		slog.Info("deregistering photos not present on disk", "count", len(toDeregister), "names", toDeregister)
		for _, rel := range toDeregister {
			if err := s.db.DeletePhoto(NewPhotoID(rel).String()); err != nil {
				slog.Warn("error while deregistering photo", "path", rel, "error", err)
			}
		}
	}

	s.trackedFiles = currentFiles

	// Signal update if files changed
	if len(toRegister) > 0 || len(toDeregister) > 0 {
		slog.Info("library changed", "added", len(toRegister), "removed", len(toDeregister))
		select {
		case s.Updated <- true:
		default:
			// Channel is full, skip
		}
	}
}

// Tracked returns the number of photo files seen by the last scan.
func (s *Scanner) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackedFiles.Cardinality()
}

func (s *Scanner) registeredPaths() (mapset.Set[string], error) {
	paths := mapset.NewSet[string]()
	for _, source := range []int{store.SourceCloud, store.SourceLocal} {
		photos, err := s.db.GetAllPhotos(source)
		if err != nil {
			return nil, err
		}
		for _, p := range photos {
			paths.Add(p.Path)
		}
	}
	return paths, nil
}

func sourceOf(rel string) int {
	if strings.HasPrefix(rel, cloudDir+"/") {
		return store.SourceCloud
	}
	return store.SourceLocal
}
