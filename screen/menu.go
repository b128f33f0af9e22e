package screen

import (
	"sync"
	"time"
)

// MenuTimeout is how long the photo view overlay stays up after being shown.
const MenuTimeout = 5 * time.Second

// Menu is the photo view overlay. It hides itself timeout after being shown.
type Menu struct {
	timeout time.Duration

	mu      sync.Mutex
	visible bool
	gen     int
	timer   *time.Timer
}

func NewMenu(timeout time.Duration) *Menu {
	return &Menu{timeout: timeout}
}

// Toggle flips visibility and returns the new value.
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(!m.visible)
	return m.visible
}

func (m *Menu) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(true)
}

func (m *Menu) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(false)
}

func (m *Menu) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Stop hides the menu and cancels the pending auto-hide.
func (m *Menu) Stop() {
	m.Hide()
}

func (m *Menu) setLocked(visible bool) {
	m.visible = visible
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if !visible {
		return
	}

	gen := m.gen
	m.timer = time.AfterFunc(m.timeout, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// a later toggle owns the menu now
		if m.gen == gen {
			m.visible = false
			m.timer = nil
		}
	})
}
