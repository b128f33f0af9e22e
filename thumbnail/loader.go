// Package thumbnail decodes photos at a target resolution, memoizes them per screen
// session, and hands the newest requested one to its display
package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/aouyang1/theframe/library"
	"github.com/disintegration/imaging"

	// register webp next to the jpeg and png decoders imaging pulls in
	_ "golang.org/x/image/webp"
)

// ErrUnavailable means the photo could not be resolved or decoded. No fallback image is
// produced.
var ErrUnavailable = errors.New("image unavailable")

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func Square(n int) Size {
	return Size{Width: n, Height: n}
}

var (
	StripSize   = Square(160)
	PreviewSize = Square(600)
	FrameSize   = Square(1000)
)

func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

type Resolver interface {
	Resolve(id library.PhotoID) (string, error)
}

// ImageLoader is satisfied by Loader and CachedLoader.
type ImageLoader interface {
	Load(ctx context.Context, id library.PhotoID, size Size) (image.Image, error)
}

type Loader struct {
	resolver Resolver
}

func NewLoader(resolver Resolver) *Loader {
	return &Loader{resolver: resolver}
}

// Load decodes the photo and scales it down to fit inside size. Smaller photos are not
// enlarged.
func (l *Loader) Load(ctx context.Context, id library.PhotoID, size Size) (image.Image, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("invalid target size %dx%d", size.Width, size.Height)
	}

	path, err := l.resolver.Resolve(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, id, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, id, err)
	}

	return imaging.Fit(img, size.Width, size.Height, imaging.Lanczos), nil
}
