// Package screen tracks the active screen visits. A frame shows one screen at a time, so
// opening a screen replaces the previous visit of the same kind.
package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aouyang1/theframe/settings"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/thumbnail"
)

type Manager struct {
	ctx    context.Context
	q      Querier
	loader thumbnail.ImageLoader
	store  settings.Store

	MenuTimeout time.Duration

	mu        sync.Mutex
	photoView *PhotoView
	settings  *Settings
}

// NewManager runs sessions under ctx; cancelling it stops every timer.
func NewManager(ctx context.Context, q Querier, loader thumbnail.ImageLoader, st settings.Store) *Manager {
	return &Manager{
		ctx:         ctx,
		q:           q,
		loader:      loader,
		store:       st,
		MenuTimeout: MenuTimeout,
	}
}

// OpenPhotoView starts a new photo view with params, closing the previous photo view and
// the settings visit that launched it.
func (m *Manager) OpenPhotoView(params slideshow.Params) *PhotoView {
	pv := newPhotoView(m.q, m.loader, params, m.MenuTimeout)
	pv.start(m.ctx)

	m.mu.Lock()
	prev, prevSettings := m.photoView, m.settings
	m.photoView, m.settings = pv, nil
	m.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	if prevSettings != nil {
		prevSettings.Close()
	}
	slog.Info("photo view opened", "session_id", pv.ID, "effect", params.Effect,
		"photo_interval", params.PhotoInterval, "start_index", params.StartIndex)
	return pv
}

func (m *Manager) PhotoView() (*PhotoView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.photoView, m.photoView != nil
}

// ClosePhotoView tears down the photo view. It reports whether one was open.
func (m *Manager) ClosePhotoView() bool {
	m.mu.Lock()
	pv := m.photoView
	m.photoView = nil
	m.mu.Unlock()

	if pv == nil {
		return false
	}
	pv.Close()
	return true
}

// OpenSettings starts a new settings visit with a freshly loaded photo list.
func (m *Manager) OpenSettings() (*Settings, error) {
	m.mu.Lock()
	prev := m.settings
	s, err := m.openSettingsLocked()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if prev != nil {
		prev.Close()
	}
	return s, nil
}

// CurrentSettings returns the open settings visit without opening one.
func (m *Manager) CurrentSettings() (*Settings, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, m.settings != nil
}

// Settings returns the open settings visit, opening one if needed.
func (m *Manager) Settings() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings != nil {
		return m.settings, nil
	}
	return m.openSettingsLocked()
}

func (m *Manager) openSettingsLocked() (*Settings, error) {
	s, err := newSettings(m.q, m.loader, m.store)
	if err != nil {
		return nil, err
	}
	s.start(m.ctx)
	m.settings = s
	slog.Info("settings opened", "session_id", s.ID, "photos", len(s.state.View().Photos))
	return s, nil
}

// Close ends every open visit.
func (m *Manager) Close() {
	m.mu.Lock()
	pv, s := m.photoView, m.settings
	m.photoView, m.settings = nil, nil
	m.mu.Unlock()

	if pv != nil {
		pv.Close()
	}
	if s != nil {
		s.Close()
	}
}
