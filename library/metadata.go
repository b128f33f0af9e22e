package library

import (
	"io/fs"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// captureDate prefers the EXIF capture time and falls back to the file modification time.
func captureDate(path string, info fs.FileInfo) time.Time {
	if tm, ok := exifDate(path); ok {
		return tm
	}
	return info.ModTime()
}

func exifDate(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// no EXIF block, png and webp usually land here
		return time.Time{}, false
	}

	tm, err := x.DateTime()
	if err != nil || tm.IsZero() {
		return time.Time{}, false
	}
	return tm, true
}
