// Package slideshow rotates through a photo list on a fixed interval
package slideshow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/transition"
	"github.com/aouyang1/theframe/util"
)

type State int

const (
	Idle State = iota
	Cycling
)

func (s State) String() string {
	if s == Cycling {
		return "cycling"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = Idle
	case "cycling":
		*s = Cycling
	default:
		return fmt.Errorf("unknown slideshow state %q", b)
	}
	return nil
}

type Snapshot struct {
	State          State             `json:"state"`
	Index          int               `json:"index"`
	Count          int               `json:"count"`
	Current        library.PhotoID   `json:"current,omitempty"`
	Effect         transition.Effect `json:"effect"`
	EffectDuration time.Duration     `json:"effect_duration"`
	PhotoInterval  time.Duration     `json:"photo_interval"`
}

// Slideshow is the two state timer: idle while there are no photos, cycling otherwise.
// Every tick advances the cursor by one, wrapping at the end of the list.
type Slideshow struct {
	mu             sync.Mutex
	photos         []library.PhotoID
	index          int
	effect         transition.Effect
	effectDuration time.Duration
	interval       time.Duration

	restart chan struct{}

	watchers    []func(Snapshot)
	subscribers map[int]chan Snapshot
	nextSub     int
}

func New(p Params) *Slideshow {
	if p.PhotoInterval <= 0 {
		p.PhotoInterval = DefaultPhotoInterval
	}
	return &Slideshow{
		index:          max(0, p.StartIndex),
		effect:         p.Effect,
		effectDuration: p.EffectDuration,
		interval:       p.PhotoInterval,
		restart:        make(chan struct{}, 1),
		subscribers:    make(map[int]chan Snapshot),
	}
}

// SetPhotos replaces the photo list and moves the cursor to start, coerced into range.
// A non-empty list starts cycling; the timer restarts either way.
func (s *Slideshow) SetPhotos(ids []library.PhotoID, start int) {
	s.mu.Lock()
	s.photos = append([]library.PhotoID(nil), ids...)
	if len(s.photos) > 0 {
		s.index = min(max(start, 0), len(s.photos)-1)
	} else {
		s.index = 0
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	slog.Debug("slideshow photos set", "count", len(ids), "index", snap.Index, "state", snap.State)
	s.signalRestart()
	s.notify(snap)
}

// SetInterval restarts the timer at the new interval. Elapsed time is not carried over.
func (s *Slideshow) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.signalRestart()
	s.notify(snap)
}

func (s *Slideshow) SetEffect(e transition.Effect, duration time.Duration) {
	s.mu.Lock()
	s.effect = e
	s.effectDuration = duration
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Tick advances the cursor by one. It is a no-op while idle.
func (s *Slideshow) Tick() Snapshot {
	s.mu.Lock()
	if len(s.photos) == 0 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.index = util.Wrap(s.index+1, len(s.photos))
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// JumpTo moves the cursor to i, wrapping into range, and restarts the timer.
func (s *Slideshow) JumpTo(i int) Snapshot {
	s.mu.Lock()
	if len(s.photos) == 0 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.index = util.Wrap(i, len(s.photos))
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.signalRestart()
	s.notify(snap)
	return snap
}

func (s *Slideshow) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Photos returns a copy of the current photo list.
func (s *Slideshow) Photos() []library.PhotoID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]library.PhotoID(nil), s.photos...)
}

func (s *Slideshow) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:          Idle,
		Index:          s.index,
		Count:          len(s.photos),
		Effect:         s.effect,
		EffectDuration: s.effectDuration,
		PhotoInterval:  s.interval,
	}
	if len(s.photos) > 0 {
		snap.State = Cycling
		snap.Current = s.photos[s.index]
	}
	return snap
}

// Watch registers fn to run after every change. Watchers run on the goroutine that made
// the change, outside the slideshow lock.
func (s *Slideshow) Watch(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Subscribe returns a channel of snapshots. Slow readers only see the latest snapshot.
func (s *Slideshow) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}
}

func (s *Slideshow) notify(snap Snapshot) {
	s.mu.Lock()
	watchers := slices.Clone(s.watchers)
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// replace the unread snapshot with the newer one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(snap)
	}
}

func (s *Slideshow) signalRestart() {
	select {
	case s.restart <- struct{}{}:
	default:
		// restart already pending
	}
}

// Run drives the timer until ctx is cancelled. While idle it waits for photos; while
// cycling it ticks every interval. Any restart signal rebuilds the ticker from scratch.
func (s *Slideshow) Run(ctx context.Context) {
	for {
		s.mu.Lock()
		interval := s.interval
		cycling := len(s.photos) > 0
		s.mu.Unlock()

		var ticker *time.Ticker
		var tick <-chan time.Time
		if cycling {
			ticker = time.NewTicker(interval)
			tick = ticker.C
		}

		restarted := false
		for !restarted {
			select {
			case <-ctx.Done():
				if ticker != nil {
					ticker.Stop()
				}
				return
			case <-s.restart:
				restarted = true
			case <-tick:
				s.Tick()
			}
		}
		if ticker != nil {
			ticker.Stop()
		}
	}
}
