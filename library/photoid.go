// Package library indexes the photos on disk and answers newest-first identifier queries
package library

import (
	"path/filepath"

	"github.com/google/uuid"
)

// PhotoID is an opaque handle into the media index. It is derived from the photo's
// library-relative path, so the same file always gets the same identifier.
type PhotoID string

var photoNamespace = uuid.MustParse("6f1c1f3e-3b52-4c61-9d1e-7a0c2b9e4d10")

func NewPhotoID(relPath string) PhotoID {
	return PhotoID(uuid.NewSHA1(photoNamespace, []byte(filepath.ToSlash(relPath))).String())
}

func (id PhotoID) String() string {
	return string(id)
}

// IndexOf returns the position of id in ids, or -1.
func IndexOf(ids []PhotoID, id PhotoID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
