package transition

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var Background = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Render composes one frame of the transition from out to in at linear progress in
// [0, 1]. Either photo may be nil.
func Render(out, in image.Image, effect Effect, progress float64, width, height int) *image.NRGBA {
	var from, to *image.NRGBA
	if out != nil {
		from = cover(out, width, height)
	}
	if in != nil {
		to = cover(in, width, height)
	}
	return compose(from, to, effect, progress, width, height)
}

func compose(from, to *image.NRGBA, effect Effect, progress float64, width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, Background)
	eased := FastOutSlowIn(clamp01(progress))
	pair := effect.Pair()

	if from != nil {
		canvas = drawLayer(canvas, from, pair.Exit.At(eased))
	}
	if to != nil {
		canvas = drawLayer(canvas, to, pair.Enter.At(eased))
	}
	return canvas
}

// cover scales and center-crops img to fill the frame.
func cover(img image.Image, width, height int) *image.NRGBA {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Linear)
}

func drawLayer(canvas *image.NRGBA, layer *image.NRGBA, s State) *image.NRGBA {
	if s.Alpha <= 0 {
		return canvas
	}

	w, h := layer.Bounds().Dx(), layer.Bounds().Dy()
	src := image.Image(layer)
	sw, sh := w, h
	if s.Scale != 1 {
		sw = max(1, int(math.Round(float64(w)*s.Scale)))
		sh = max(1, int(math.Round(float64(h)*s.Scale)))
		scaled := image.NewNRGBA(image.Rect(0, 0, sw, sh))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), layer, layer.Bounds(), draw.Src, nil)
		src = scaled
	}

	x := (w-sw)/2 + int(math.Round(s.Offset*float64(w)))
	y := (h - sh) / 2
	return imaging.Overlay(canvas, src, image.Pt(x, y), math.Min(s.Alpha, 1))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Transition is an in-progress change between two photos.
type Transition struct {
	From     image.Image
	To       image.Image
	Effect   Effect
	Duration time.Duration
	Start    time.Time

	mu       sync.Mutex
	prepared image.Point
	from, to *image.NRGBA
}

func New(from, to image.Image, effect Effect, duration time.Duration, start time.Time) *Transition {
	return &Transition{
		From:     from,
		To:       to,
		Effect:   effect,
		Duration: duration,
		Start:    start,
	}
}

// Progress is the linear progress at now, in [0, 1].
func (t *Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(t.Start)) / float64(t.Duration))
}

func (t *Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Frame renders the transition at now. Cover-scaled copies of both photos are kept for
// the last requested frame size.
func (t *Transition) Frame(now time.Time, width, height int) *image.NRGBA {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.prepared != image.Pt(width, height) {
		t.from, t.to = nil, nil
		if t.From != nil {
			t.from = cover(t.From, width, height)
		}
		if t.To != nil {
			t.to = cover(t.To, width, height)
		}
		t.prepared = image.Pt(width, height)
	}

	return compose(t.from, t.to, t.Effect, t.Progress(now), width, height)
}
