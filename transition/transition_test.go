package transition

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"
	"time"
)

func TestParseEffect(t *testing.T) {
	tests := []struct {
		in      string
		want    Effect
		wantErr bool
	}{
		{"Fade", Fade, false},
		{"slide", Slide, false},
		{" ZOOM ", Zoom, false},
		{"wipe", Fade, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEffect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Effect Effect `json:"effect"`
	}{Zoom})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"effect":"Zoom"}` {
		t.Fatalf("marshal = %s", b)
	}

	var v struct {
		Effect Effect `json:"effect"`
	}
	if err := json.Unmarshal([]byte(`{"effect":"slide"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Effect != Slide {
		t.Fatalf("unmarshal = %v", v.Effect)
	}
	if err := json.Unmarshal([]byte(`{"effect":"spin"}`), &v); err == nil {
		t.Fatal("expected error for unknown effect")
	}
}

func TestPairs(t *testing.T) {
	slide := Slide.Pair()
	if slide.Enter.At(0).Offset != 1 || slide.Exit.At(1).Offset != -1 {
		t.Fatalf("slide offsets wrong: %+v", slide)
	}
	zoom := Zoom.Pair()
	if zoom.Enter.At(0).Scale != zoomScale || zoom.Exit.At(1).Scale != zoomScale {
		t.Fatalf("zoom scales wrong: %+v", zoom)
	}
	for _, e := range Effects {
		p := e.Pair()
		if p.Enter.At(0).Alpha != 0 || p.Enter.At(1).Alpha != 1 {
			t.Errorf("%v enter should fade in", e)
		}
		if p.Exit.At(0).Alpha != 1 || p.Exit.At(1).Alpha != 0 {
			t.Errorf("%v exit should fade out", e)
		}
	}
}

func TestFastOutSlowIn(t *testing.T) {
	if FastOutSlowIn(0) != 0 || FastOutSlowIn(1) != 1 {
		t.Fatal("easing endpoints must be 0 and 1")
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := FastOutSlowIn(float64(i) / 100)
		if v < prev {
			t.Fatalf("easing not monotonic at %d", i)
		}
		prev = v
	}
	// fast out: ahead of linear at the midpoint
	if FastOutSlowIn(0.5) <= 0.5 {
		t.Fatalf("FastOutSlowIn(0.5) = %v, want > 0.5", FastOutSlowIn(0.5))
	}
}

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2
}

func TestRenderEndpoints(t *testing.T) {
	out, in := solid(red), solid(blue)
	for _, e := range Effects {
		t.Run(e.String(), func(t *testing.T) {
			start := Render(out, in, e, 0, 100, 80)
			if got := start.NRGBAAt(50, 40); !near(got, red) {
				t.Fatalf("progress 0 center = %v, want red", got)
			}
			end := Render(out, in, e, 1, 100, 80)
			if got := end.NRGBAAt(50, 40); !near(got, blue) {
				t.Fatalf("progress 1 center = %v, want blue", got)
			}
			if b := end.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
				t.Fatalf("frame bounds = %v", b)
			}
		})
	}
}

func TestRenderZoomMidpointShrinks(t *testing.T) {
	frame := Render(solid(red), solid(blue), Zoom, 0.5, 100, 80)
	if got := frame.NRGBAAt(0, 40); !near(got, Background) {
		t.Fatalf("left edge = %v, want background while both layers are scaled down", got)
	}
}

func TestRenderSlideMidpoint(t *testing.T) {
	frame := Render(solid(red), solid(blue), Slide, 0.5, 100, 80)
	// the incoming photo enters from the right
	right := frame.NRGBAAt(99, 40)
	if right.B == 0 {
		t.Fatalf("right edge = %v, want some of the incoming photo", right)
	}
}

func TestRenderWithoutOutgoing(t *testing.T) {
	frame := Render(nil, solid(blue), Fade, 1, 20, 20)
	if got := frame.NRGBAAt(10, 10); !near(got, blue) {
		t.Fatalf("center = %v, want blue", got)
	}
}

func TestTransitionProgress(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := New(solid(red), solid(blue), Fade, 2*time.Second, start)

	if p := tr.Progress(start.Add(-time.Second)); p != 0 {
		t.Fatalf("before start progress = %v", p)
	}
	if p := tr.Progress(start.Add(time.Second)); p != 0.5 {
		t.Fatalf("midway progress = %v", p)
	}
	if !tr.Done(start.Add(3 * time.Second)) {
		t.Fatal("transition should be done after its duration")
	}

	frame := tr.Frame(start.Add(2*time.Second), 64, 48)
	if got := frame.NRGBAAt(32, 24); !near(got, blue) {
		t.Fatalf("final frame center = %v, want blue", got)
	}

	instant := New(nil, solid(blue), Fade, 0, start)
	if !instant.Done(start) {
		t.Fatal("zero duration transition should be done immediately")
	}
}
