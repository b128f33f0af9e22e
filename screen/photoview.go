package screen

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/thumbnail"
	"github.com/aouyang1/theframe/transition"
)

const (
	PhotoViewLimit = 48
	SettingsLimit  = 24
)

// Querier lists the photos available to a screen visit.
type Querier interface {
	Query(maxCount int) []library.PhotoID
}

type PhotoViewState struct {
	SessionID uuid.UUID          `json:"session_id"`
	Slideshow slideshow.Snapshot `json:"slideshow"`
	Shown     library.PhotoID    `json:"shown,omitempty"`
	// Progress of the running transition in [0, 1].
	Progress    float64 `json:"progress"`
	MenuVisible bool    `json:"menu_visible"`
}

// PhotoView is one visit to the full screen slideshow. It owns the photo list, the
// decoded photo cache and the transition between the last two shown photos.
type PhotoView struct {
	ID uuid.UUID

	show      *slideshow.Slideshow
	cache     *thumbnail.Cache
	presenter *thumbnail.Presenter
	menu      *Menu
	now       func() time.Time

	mu         sync.Mutex
	effect     transition.Effect
	duration   time.Duration
	last       image.Image
	transition *transition.Transition

	cancel context.CancelFunc
	done   chan struct{}
}

func newPhotoView(q Querier, loader thumbnail.ImageLoader, params slideshow.Params, menuTimeout time.Duration) *PhotoView {
	cache := thumbnail.NewCache()
	pv := &PhotoView{
		ID:       uuid.New(),
		show:     slideshow.New(params),
		cache:    cache,
		menu:     NewMenu(menuTimeout),
		now:      time.Now,
		effect:   params.Effect,
		duration: params.EffectDuration,
	}
	pv.presenter = thumbnail.NewPresenter(thumbnail.NewCachedLoader(loader, cache), thumbnail.FrameSize, pv.onShow)

	pv.show.Watch(pv.follow)
	pv.show.SetPhotos(q.Query(PhotoViewLimit), params.StartIndex)
	return pv
}

func (pv *PhotoView) follow(snap slideshow.Snapshot) {
	pv.mu.Lock()
	pv.effect = snap.Effect
	pv.duration = snap.EffectDuration
	pv.mu.Unlock()

	pv.presenter.Request(snap.Current)
}

// onShow starts a transition from the previously shown photo to img.
func (pv *PhotoView) onShow(id library.PhotoID, img image.Image) {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	pv.transition = transition.New(pv.last, img, pv.effect, pv.duration, pv.now())
	pv.last = img
	slog.Debug("photo shown", "session_id", pv.ID, "photo_id", id, "effect", pv.effect)
}

func (pv *PhotoView) start(ctx context.Context) {
	ctx, pv.cancel = context.WithCancel(ctx)
	pv.done = make(chan struct{})
	go func() {
		defer close(pv.done)
		pv.show.Run(ctx)
	}()
}

// Slideshow exposes the timer for subscriptions.
func (pv *PhotoView) Slideshow() *slideshow.Slideshow {
	return pv.show
}

// Done is closed once the visit's timer has stopped.
func (pv *PhotoView) Done() <-chan struct{} {
	return pv.done
}

func (pv *PhotoView) Menu() *Menu {
	return pv.menu
}

// Frame renders the current transition frame. It reports false while nothing has been
// shown yet, which is the case for an empty library.
func (pv *PhotoView) Frame(width, height int) (*image.NRGBA, bool) {
	pv.mu.Lock()
	t := pv.transition
	now := pv.now()
	pv.mu.Unlock()

	if t == nil {
		return nil, false
	}
	return t.Frame(now, width, height), true
}

func (pv *PhotoView) State() PhotoViewState {
	shown, _, _ := pv.presenter.Current()

	pv.mu.Lock()
	progress := 0.0
	if pv.transition != nil {
		progress = pv.transition.Progress(pv.now())
	}
	pv.mu.Unlock()

	return PhotoViewState{
		SessionID:   pv.ID,
		Slideshow:   pv.show.Snapshot(),
		Shown:       shown,
		Progress:    progress,
		MenuVisible: pv.menu.Visible(),
	}
}

// Close stops the timer, waits for decodes and drops the cache.
func (pv *PhotoView) Close() {
	if pv.cancel != nil {
		pv.cancel()
		<-pv.done
	}
	pv.presenter.Close()
	pv.menu.Stop()
	cached := pv.cache.Len()
	pv.cache.Clear()

	pv.mu.Lock()
	pv.last, pv.transition = nil, nil
	pv.mu.Unlock()
	slog.Debug("photo view closed", "session_id", pv.ID, "cached", cached)
}
