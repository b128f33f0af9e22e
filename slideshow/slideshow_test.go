package slideshow

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/transition"
)

func ids(n int) []library.PhotoID {
	out := make([]library.PhotoID, n)
	for i := range out {
		out[i] = library.PhotoID(fmt.Sprintf("photo-%d", i))
	}
	return out
}

func TestTickWrapsModLength(t *testing.T) {
	for _, n := range []int{1, 2, 5, 48} {
		for _, start := range []int{0, n / 2, n - 1} {
			t.Run(fmt.Sprintf("n=%d/start=%d", n, start), func(t *testing.T) {
				s := New(DefaultParams())
				s.SetPhotos(ids(n), start)
				for ticks := 1; ticks <= 3*n+2; ticks++ {
					snap := s.Tick()
					if want := (start + ticks) % n; snap.Index != want {
						t.Fatalf("after %d ticks index = %d, want %d", ticks, snap.Index, want)
					}
				}
			})
		}
	}
}

func TestStartIndexCoerced(t *testing.T) {
	s := New(DefaultParams())
	s.SetPhotos(ids(3), 10)
	if got := s.Snapshot().Index; got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
	s.SetPhotos(ids(3), -4)
	if got := s.Snapshot().Index; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestIdleUntilPhotos(t *testing.T) {
	s := New(DefaultParams())
	if snap := s.Tick(); snap.State != Idle || snap.Index != 0 || snap.Current != "" {
		t.Fatalf("idle tick changed state: %+v", snap)
	}
	s.SetPhotos(ids(2), 0)
	snap := s.Snapshot()
	if snap.State != Cycling || snap.Current != "photo-0" {
		t.Fatalf("snapshot = %+v, want cycling on photo-0", snap)
	}
	s.SetPhotos(nil, 0)
	if s.Snapshot().State != Idle {
		t.Fatal("empty list should return to idle")
	}
}

func TestJumpTo(t *testing.T) {
	s := New(DefaultParams())
	s.SetPhotos(ids(4), 0)
	if snap := s.JumpTo(6); snap.Index != 2 {
		t.Fatalf("JumpTo(6) index = %d, want 2", snap.Index)
	}
}

func TestRunAdvancesAndRestarts(t *testing.T) {
	p := DefaultParams()
	p.PhotoInterval = 10 * time.Millisecond
	s := New(p)
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// idle: nothing happens without photos
	time.Sleep(30 * time.Millisecond)
	if s.Snapshot().Index != 0 {
		t.Fatal("idle slideshow should not advance")
	}

	s.SetPhotos(ids(3), 0)
	deadline := time.After(2 * time.Second)
	for advanced := false; !advanced; {
		select {
		case snap := <-ch:
			advanced = snap.Index > 0
		case <-deadline:
			t.Fatal("slideshow did not advance")
		}
	}

	// a long interval stops the fast ticks
	s.SetInterval(time.Hour)
	time.Sleep(20 * time.Millisecond)
	before := s.Snapshot().Index
	time.Sleep(50 * time.Millisecond)
	if after := s.Snapshot().Index; after != before {
		t.Fatalf("index moved from %d to %d after restart at a long interval", before, after)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestWatchAndSubscribe(t *testing.T) {
	s := New(DefaultParams())
	var seen []int
	s.Watch(func(snap Snapshot) { seen = append(seen, snap.Index) })

	ch, unsubscribe := s.Subscribe()
	s.SetPhotos(ids(3), 0)
	s.Tick()
	s.Tick()

	// only the newest snapshot is kept for a slow reader
	if snap := <-ch; snap.Index != 2 {
		t.Fatalf("subscriber got index %d, want 2", snap.Index)
	}
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
	unsubscribe()

	if len(seen) != 3 || seen[2] != 2 {
		t.Fatalf("watcher saw %v", seen)
	}

	s.SetEffect(transition.Zoom, time.Second)
	if got := s.Snapshot().Effect; got != transition.Zoom {
		t.Fatalf("effect = %v", got)
	}
}

func TestParamsFromSeconds(t *testing.T) {
	p, err := ParamsFromSeconds("slide", 0.1, 12, -3)
	if err != nil {
		t.Fatal(err)
	}
	if p.Effect != transition.Slide {
		t.Fatalf("effect = %v", p.Effect)
	}
	if p.EffectDuration != 500*time.Millisecond {
		t.Fatalf("effect duration = %v, want clamped to 500ms", p.EffectDuration)
	}
	if p.PhotoInterval != 8*time.Second {
		t.Fatalf("interval = %v, want clamped to 8s", p.PhotoInterval)
	}
	if p.StartIndex != 0 {
		t.Fatalf("start index = %d", p.StartIndex)
	}
	if _, err := ParamsFromSeconds("spin", 1, 1, 0); err == nil {
		t.Fatal("expected error for unknown effect")
	}
}

func TestClampSeconds(t *testing.T) {
	for _, v := range []float64{-1, 0, 0.49, 0.5, 3.3, 8, 8.01, 100} {
		got := ClampSeconds(v)
		if got < MinSeconds || got > MaxSeconds {
			t.Fatalf("ClampSeconds(%v) = %v out of range", v, got)
		}
	}
}

func TestWatchersRunInOrder(t *testing.T) {
	s := New(DefaultParams())
	var calls []string
	s.Watch(func(Snapshot) { calls = append(calls, "first") })
	s.Watch(func(snap Snapshot) {
		calls = append(calls, "second")
		if snap.Index == 0 && len(calls) == 2 {
			// registering from a watcher takes effect on the next change
			s.Watch(func(Snapshot) { calls = append(calls, "late") })
		}
	})

	s.SetPhotos(ids(2), 0)
	if want := []string{"first", "second"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	s.Tick()
	if want := []string{"first", "second", "first", "second", "late"}; !slices.Equal(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}
