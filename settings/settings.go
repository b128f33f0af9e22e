// Package settings holds the settings screen selections and turns them into slideshow
// launch params
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/store"
	"github.com/aouyang1/theframe/transition"
)

// Store persists the last applied launch params.
type Store interface {
	GetAppSettings() (*store.AppSettings, error)
	UpsertAppSettings(s *store.AppSettings) error
}

type View struct {
	Effect                transition.Effect `json:"effect"`
	EffectDurationSeconds float64           `json:"effect_duration_seconds"`
	PhotoIntervalSeconds  float64           `json:"photo_interval_seconds"`
	PreviewIndex          int               `json:"preview_index"`
	PreviewPhoto          library.PhotoID   `json:"preview_photo,omitempty"`
	Photos                []library.PhotoID `json:"photos"`
}

// State is the settings screen model. The preview index cycles on its own timer at the
// selected photo interval, exactly like the photo view.
type State struct {
	store   Store
	preview *slideshow.Slideshow
}

// New starts from the last applied settings, or the defaults when none were saved.
func New(st Store, photos []library.PhotoID) (*State, error) {
	params := slideshow.DefaultParams()
	if st != nil {
		saved, err := st.GetAppSettings()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if p, err := slideshow.ParamsFromSeconds(saved.Effect, saved.EffectDurationSeconds, saved.PhotoIntervalSeconds, 0); err == nil {
			params = p
		}
	}
	params.StartIndex = 0

	preview := slideshow.New(params)
	preview.SetPhotos(photos, 0)
	return &State{store: st, preview: preview}, nil
}

// Run cycles the preview index until ctx is done.
func (s *State) Run(ctx context.Context) {
	s.preview.Run(ctx)
}

// Preview exposes the preview slideshow so a presenter can follow it.
func (s *State) Preview() *slideshow.Slideshow {
	return s.preview
}

func (s *State) SetEffect(e transition.Effect) {
	snap := s.preview.Snapshot()
	s.preview.SetEffect(e, snap.EffectDuration)
}

// SetEffectDuration clamps to [0.5, 8] seconds and returns the stored value.
func (s *State) SetEffectDuration(secs float64) float64 {
	secs = slideshow.ClampSeconds(secs)
	snap := s.preview.Snapshot()
	s.preview.SetEffect(snap.Effect, slideshow.Seconds(secs))
	return secs
}

// SetPhotoInterval clamps to [0.5, 8] seconds, restarts the preview timer, and returns
// the stored value.
func (s *State) SetPhotoInterval(secs float64) float64 {
	secs = slideshow.ClampSeconds(secs)
	s.preview.SetInterval(slideshow.Seconds(secs))
	return secs
}

// SelectPhoto jumps the preview to id's position in the loaded list. Unknown ids are
// ignored.
func (s *State) SelectPhoto(id library.PhotoID) bool {
	idx := library.IndexOf(s.preview.Photos(), id)
	if idx < 0 {
		return false
	}
	s.preview.JumpTo(idx)
	return true
}

func (s *State) View() View {
	snap := s.preview.Snapshot()
	return View{
		Effect:                snap.Effect,
		EffectDurationSeconds: snap.EffectDuration.Seconds(),
		PhotoIntervalSeconds:  snap.PhotoInterval.Seconds(),
		PreviewIndex:          snap.Index,
		PreviewPhoto:          snap.Current,
		Photos:                s.preview.Photos(),
	}
}

// Apply returns the launch params for the photo view, starting at the preview index,
// and saves them.
func (s *State) Apply() (slideshow.Params, error) {
	snap := s.preview.Snapshot()
	params := slideshow.Params{
		Effect:         snap.Effect,
		EffectDuration: snap.EffectDuration,
		PhotoInterval:  snap.PhotoInterval,
		StartIndex:     snap.Index,
	}

	if s.store != nil {
		if err := s.store.UpsertAppSettings(ToAppSettings(params)); err != nil {
			return params, fmt.Errorf("save settings: %w", err)
		}
	}
	return params, nil
}

func ToAppSettings(p slideshow.Params) *store.AppSettings {
	return &store.AppSettings{
		Effect:                p.Effect.String(),
		EffectDurationSeconds: roundSeconds(p.EffectDuration),
		PhotoIntervalSeconds:  roundSeconds(p.PhotoInterval),
		StartIndex:            p.StartIndex,
	}
}

func roundSeconds(d time.Duration) float64 {
	return d.Round(time.Millisecond).Seconds()
}
