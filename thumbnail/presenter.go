package thumbnail

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/aouyang1/theframe/library"
)

// ShowFunc is called with the presenter's lock held whenever a new photo becomes the
// displayed one. It must not call back into the Presenter.
type ShowFunc func(id library.PhotoID, img image.Image)

// Presenter keeps the photo that should be on screen. Requests decode in the background
// and only the most recently requested identifier is ever applied; results for superseded
// identifiers are dropped.
type Presenter struct {
	loader ImageLoader
	size   Size
	onShow ShowFunc

	mu      sync.Mutex
	wanted  library.PhotoID
	shown   library.PhotoID
	current image.Image
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

func NewPresenter(loader ImageLoader, size Size, onShow ShowFunc) *Presenter {
	return &Presenter{
		loader: loader,
		size:   size,
		onShow: onShow,
	}
}

// Request makes id the wanted photo. An empty id clears the display.
func (p *Presenter) Request(id library.PhotoID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.wanted = id

	if id == "" {
		p.shown = ""
		p.current = nil
		return
	}
	if id == p.shown && p.current != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		img, err := p.loader.Load(ctx, id, p.size)
		p.apply(id, img, err)
	}()
}

func (p *Presenter) apply(id library.PhotoID, img image.Image, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.wanted != id {
		slog.Debug("dropping stale decode", "photo_id", id, "wanted", p.wanted)
		return
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Debug("photo unavailable", "photo_id", id, "error", err)
		}
		return
	}

	p.shown = id
	p.current = img
	if p.onShow != nil {
		p.onShow(id, img)
	}
}

// Current returns the displayed photo, if any.
func (p *Presenter) Current() (library.PhotoID, image.Image, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown, p.current, p.current != nil
}

// Wanted returns the most recently requested identifier.
func (p *Presenter) Wanted() library.PhotoID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wanted
}

// Wait blocks until every in-flight decode has finished.
func (p *Presenter) Wait() {
	p.wg.Wait()
}

// Close cancels the pending decode and waits for in-flight work to drain.
func (p *Presenter) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.wanted = ""
	p.mu.Unlock()
	p.wg.Wait()
}
