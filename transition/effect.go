// Package transition animates the change from one displayed photo to the next
package transition

import (
	"fmt"
	"strings"
)

type Effect int

const (
	Fade Effect = iota
	Slide
	Zoom
)

var effectNames = [...]string{"Fade", "Slide", "Zoom"}

// Effects lists every effect in menu order.
var Effects = []Effect{Fade, Slide, Zoom}

func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return fmt.Sprintf("Effect(%d)", int(e))
	}
	return effectNames[e]
}

// ParseEffect accepts effect names case-insensitively.
func ParseEffect(s string) (Effect, error) {
	for i, name := range effectNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Effect(i), nil
		}
	}
	return Fade, fmt.Errorf("unknown effect %q", s)
}

func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Effect) UnmarshalText(b []byte) error {
	parsed, err := ParseEffect(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Animation describes one side of a transition. Offset is a fraction of the frame width.
type Animation struct {
	FromAlpha, ToAlpha   float64
	FromOffset, ToOffset float64
	FromScale, ToScale   float64
}

// Pair is the enter animation for the incoming photo and the exit animation for the
// outgoing one, run together.
type Pair struct {
	Enter Animation
	Exit  Animation
}

const zoomScale = 0.92

var (
	fadeIn  = Animation{FromAlpha: 0, ToAlpha: 1, FromScale: 1, ToScale: 1}
	fadeOut = Animation{FromAlpha: 1, ToAlpha: 0, FromScale: 1, ToScale: 1}
)

func (e Effect) Pair() Pair {
	switch e {
	case Slide:
		enter, exit := fadeIn, fadeOut
		enter.FromOffset, enter.ToOffset = 1, 0
		exit.FromOffset, exit.ToOffset = 0, -1
		return Pair{Enter: enter, Exit: exit}
	case Zoom:
		enter, exit := fadeIn, fadeOut
		enter.FromScale = zoomScale
		exit.ToScale = zoomScale
		return Pair{Enter: enter, Exit: exit}
	default:
		return Pair{Enter: fadeIn, Exit: fadeOut}
	}
}

// State is an animation sampled at a point in time.
type State struct {
	Alpha  float64
	Offset float64
	Scale  float64
}

// At samples the animation at eased progress t in [0, 1].
func (a Animation) At(t float64) State {
	return State{
		Alpha:  lerp(a.FromAlpha, a.ToAlpha, t),
		Offset: lerp(a.FromOffset, a.ToOffset, t),
		Scale:  lerp(a.FromScale, a.ToScale, t),
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
