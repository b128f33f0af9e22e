package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "photos.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecentPhotosNewestFirst(t *testing.T) {
	db := newTestDatabase(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c", "d"} {
		p := Photo{
			PhotoID:   name,
			Path:      name + ".jpg",
			Source:    SourceLocal,
			DateAdded: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.UpsertPhoto(p); err != nil {
			t.Fatalf("UpsertPhoto: %v", err)
		}
	}

	photos, err := db.GetRecentPhotos(3)
	if err != nil {
		t.Fatalf("GetRecentPhotos: %v", err)
	}
	var got []string
	for _, p := range photos {
		got = append(got, p.PhotoID)
	}
	want := []string{"d", "c", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDeletePhoto(t *testing.T) {
	db := newTestDatabase(t)
	if err := db.UpsertPhoto(Photo{PhotoID: "x", Path: "x.jpg", DateAdded: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeletePhoto("x"); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if err := db.DeletePhoto("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetPhoto("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPhoto err = %v, want ErrNotFound", err)
	}
}

func TestAppSettingsBootstrapAndUpsert(t *testing.T) {
	db := newTestDatabase(t)

	s, err := db.GetAppSettings()
	if err != nil {
		t.Fatalf("GetAppSettings: %v", err)
	}
	if *s != *DefaultAppSettings() {
		t.Fatalf("bootstrap settings = %+v", s)
	}

	want := &AppSettings{Effect: "Zoom", EffectDurationSeconds: 2.5, PhotoIntervalSeconds: 6, StartIndex: 3}
	if err := db.UpsertAppSettings(want); err != nil {
		t.Fatalf("UpsertAppSettings: %v", err)
	}
	got, err := db.GetAppSettings()
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAccess(t *testing.T) {
	db := newTestDatabase(t)

	a, err := db.GetAccess()
	if err != nil {
		t.Fatal(err)
	}
	if a.Granted {
		t.Fatal("access should not be granted before asking")
	}

	if err := db.UpsertAccess(&Access{Granted: true, UpdatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	a, err = db.GetAccess()
	if err != nil {
		t.Fatal(err)
	}
	if !a.Granted {
		t.Fatal("access should be granted")
	}
}
