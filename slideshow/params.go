package slideshow

import (
	"fmt"
	"time"

	"github.com/aouyang1/theframe/transition"
	"github.com/aouyang1/theframe/util"
)

const (
	MinSeconds = 0.5
	MaxSeconds = 8.0

	DefaultEffectDuration = 1200 * time.Millisecond
	DefaultPhotoInterval  = 4 * time.Second
)

// Params are handed from the settings screen to the photo view.
type Params struct {
	Effect         transition.Effect
	EffectDuration time.Duration
	PhotoInterval  time.Duration
	StartIndex     int
}

func DefaultParams() Params {
	return Params{
		Effect:         transition.Fade,
		EffectDuration: DefaultEffectDuration,
		PhotoInterval:  DefaultPhotoInterval,
	}
}

// ClampSeconds bounds a slider value to [0.5, 8] seconds.
func ClampSeconds(secs float64) float64 {
	return util.Clamp(secs, MinSeconds, MaxSeconds)
}

// Seconds converts clamped slider seconds to a duration.
func Seconds(secs float64) time.Duration {
	return time.Duration(ClampSeconds(secs) * float64(time.Second))
}

// ParamsFromSeconds builds Params from their wire form. Durations are clamped and a
// negative start index is treated as 0.
func ParamsFromSeconds(effect string, effectDuration, photoInterval float64, startIndex int) (Params, error) {
	e, err := transition.ParseEffect(effect)
	if err != nil {
		return Params{}, fmt.Errorf("invalid launch params: %w", err)
	}
	return Params{
		Effect:         e,
		EffectDuration: Seconds(effectDuration),
		PhotoInterval:  Seconds(photoInterval),
		StartIndex:     max(0, startIndex),
	}, nil
}
