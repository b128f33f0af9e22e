package screen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/settings"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/thumbnail"
)

// ErrNotOnScreen is returned for photos outside the settings screen's list.
var ErrNotOnScreen = errors.New("photo not on screen")

// Settings is one visit to the settings screen: the settings state, a large preview that
// follows the preview index, and the thumbnail strip.
type Settings struct {
	ID uuid.UUID

	state   *settings.State
	cache   *thumbnail.Cache
	loader  *thumbnail.CachedLoader
	preview *thumbnail.Presenter

	cancel context.CancelFunc
	done   chan struct{}
}

func newSettings(q Querier, loader thumbnail.ImageLoader, st settings.Store) (*Settings, error) {
	state, err := settings.New(st, q.Query(SettingsLimit))
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	cache := thumbnail.NewCache()
	cached := thumbnail.NewCachedLoader(loader, cache)
	s := &Settings{
		ID:      uuid.New(),
		state:   state,
		cache:   cache,
		loader:  cached,
		preview: thumbnail.NewPresenter(cached, thumbnail.PreviewSize, nil),
	}

	state.Preview().Watch(func(snap slideshow.Snapshot) {
		s.preview.Request(snap.Current)
	})
	s.preview.Request(state.View().PreviewPhoto)
	return s, nil
}

func (s *Settings) start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.state.Run(ctx)
	}()
}

func (s *Settings) State() *settings.State {
	return s.state
}

// Preview returns the decoded preview photo, if it is ready.
func (s *Settings) Preview() (library.PhotoID, image.Image, bool) {
	return s.preview.Current()
}

// Thumbnail decodes id through the session cache. Only photos on the settings screen
// can be loaded.
func (s *Settings) Thumbnail(ctx context.Context, id library.PhotoID, size thumbnail.Size) (image.Image, error) {
	if library.IndexOf(s.state.View().Photos, id) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotOnScreen, id)
	}
	return s.loader.Load(ctx, id, size)
}

func (s *Settings) Close() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.preview.Close()
	s.cache.Clear()
	slog.Debug("settings closed", "session_id", s.ID)
}
