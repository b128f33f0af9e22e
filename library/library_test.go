package library

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/theframe/store"
)

func writeJPEG(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
}

func newTestLibrary(t *testing.T) (*Library, *Scanner, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "photos")
	db, err := store.NewDatabase(filepath.Join(t.TempDir(), "photos.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	scanner, err := NewScanner(db, root, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return New(db, root), scanner, root
}

func TestNewPhotoIDStable(t *testing.T) {
	if NewPhotoID("a/b.jpg") != NewPhotoID("a/b.jpg") {
		t.Fatal("identifier should be stable for the same path")
	}
	if NewPhotoID("a/b.jpg") == NewPhotoID("a/c.jpg") {
		t.Fatal("different paths should get different identifiers")
	}
}

func TestQueryNewestFirstTruncated(t *testing.T) {
	lib, scanner, root := newTestLibrary(t)
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"one.jpg", "two.jpg", "three.jpg", "cloud/four.jpg"}
	for i, name := range names {
		writeJPEG(t, filepath.Join(root, name), base.Add(time.Duration(i)*24*time.Hour))
	}
	writeJPEG(t, filepath.Join(root, "ignored.gif"), base)

	scanner.Scan()
	if scanner.Tracked() != len(names) {
		t.Fatalf("tracked = %d, want %d", scanner.Tracked(), len(names))
	}
	if lib.Count() != len(names) {
		t.Fatalf("count = %d, want %d", lib.Count(), len(names))
	}

	got := lib.Query(3)
	want := []PhotoID{NewPhotoID("cloud/four.jpg"), NewPhotoID("three.jpg"), NewPhotoID("two.jpg")}
	if len(got) != len(want) {
		t.Fatalf("Query(3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Query(3)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	path, err := lib.Resolve(NewPhotoID("cloud/four.jpg"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != filepath.Join(root, "cloud", "four.jpg") {
		t.Fatalf("Resolve = %s", path)
	}
}

func TestQueryEmptyLibrary(t *testing.T) {
	lib, scanner, _ := newTestLibrary(t)
	scanner.Scan()
	if ids := lib.Query(48); len(ids) != 0 {
		t.Fatalf("Query on empty library = %v", ids)
	}
	if ids := lib.Query(0); ids != nil {
		t.Fatalf("Query(0) = %v", ids)
	}
}

func TestScanSignalsAndDeregisters(t *testing.T) {
	lib, scanner, root := newTestLibrary(t)
	path := filepath.Join(root, "gone.jpg")
	writeJPEG(t, path, time.Now())

	scanner.Scan()
	select {
	case <-scanner.Updated:
	default:
		t.Fatal("expected update signal after first scan")
	}

	// unchanged library, no signal
	scanner.Scan()
	select {
	case <-scanner.Updated:
		t.Fatal("unexpected update signal")
	default:
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	scanner.Scan()
	if ids := lib.Query(10); len(ids) != 0 {
		t.Fatalf("removed photo still indexed: %v", ids)
	}
	if _, err := lib.Resolve(NewPhotoID("gone.jpg")); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Resolve err = %v, want ErrNotFound", err)
	}
}

func TestIndexOf(t *testing.T) {
	ids := []PhotoID{"a", "b", "c"}
	if IndexOf(ids, "c") != 2 {
		t.Fatal("IndexOf(c) != 2")
	}
	if IndexOf(ids, "z") != -1 {
		t.Fatal("IndexOf(z) != -1")
	}
}
