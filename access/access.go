// Package access gates the photo library behind operator consent.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aouyang1/theframe/store"
)

type State int

const (
	Unknown State = iota
	Granted
	Denied
)

var stateNames = map[State]string{
	Unknown: "unknown",
	Granted: "granted",
	Denied:  "denied",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for state, name := range stateNames {
		if name == string(b) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown access state %q", b)
}

// Store records the operator's consent.
type Store interface {
	GetAccess() (*store.Access, error)
	UpsertAccess(a *store.Access) error
}

// Prompt asks the operator for access and reports whether it was accepted.
type Prompt func(ctx context.Context) (bool, error)

// Result is what the intro screen shows after a request.
type Result struct {
	State State `json:"state"`
	// Next is set once access is held and names the screen to go to.
	Next string `json:"next,omitempty"`
	// SettingsURL deep links to where access can be changed. Only set when denied.
	SettingsURL string `json:"settings_url,omitempty"`
}

// Gate holds the access state. Access is held when the operator has consented and the
// library root is readable.
type Gate struct {
	store       Store
	root        string
	next        string
	settingsURL string

	mu     sync.Mutex
	state  State
	denied bool
}

// NewGate restores an earlier refusal from the store so the deep link survives a
// restart.
func NewGate(st Store, root, next, settingsURL string) *Gate {
	g := &Gate{
		store:       st,
		root:        root,
		next:        next,
		settingsURL: settingsURL,
	}

	a, err := st.GetAccess()
	if err != nil {
		slog.Error("unable to read access", "error", err)
		return g
	}
	// a refusal is recorded with its time; a revoke or no answer has none
	if !a.Granted && !a.UpdatedAt.IsZero() {
		g.state, g.denied = Denied, true
	}
	return g
}

// Held reports whether access is currently held without asking for it.
func (g *Gate) Held() bool {
	a, err := g.store.GetAccess()
	if err != nil {
		slog.Error("unable to read access", "error", err)
		return false
	}
	return a.Granted && g.readable()
}

func (g *Gate) readable() bool {
	if _, err := os.ReadDir(g.root); err != nil {
		slog.Warn("library root not readable", "root", g.root, "error", err)
		return false
	}
	return true
}

// Request goes straight to the next screen when access is already held. Otherwise the
// operator is asked once: acceptance clears any earlier denial, refusal leaves the gate
// denied with a link to the settings page.
func (g *Gate) Request(ctx context.Context, prompt Prompt) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Held() {
		g.state, g.denied = Granted, false
		return g.resultLocked(), nil
	}

	accepted, err := prompt(ctx)
	if err != nil {
		return g.resultLocked(), fmt.Errorf("access prompt: %w", err)
	}

	if err := g.store.UpsertAccess(&store.Access{Granted: accepted, UpdatedAt: time.Now()}); err != nil {
		return g.resultLocked(), fmt.Errorf("save access: %w", err)
	}

	if accepted && g.readable() {
		g.state, g.denied = Granted, false
	} else {
		g.state, g.denied = Denied, true
	}
	slog.Info("access requested", "accepted", accepted, "state", g.state)
	return g.resultLocked(), nil
}

// Revoke withdraws consent. The gate returns to unknown.
func (g *Gate) Revoke() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.UpsertAccess(&store.Access{Granted: false}); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	g.state, g.denied = Unknown, false
	return nil
}

// Status reports the current state, picking up consent given out of band.
func (g *Gate) Status() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Held() {
		g.state, g.denied = Granted, false
	} else if g.state == Granted {
		g.state = Unknown
	}
	return g.resultLocked()
}

func (g *Gate) resultLocked() Result {
	r := Result{State: g.state}
	switch {
	case g.state == Granted:
		r.Next = g.next
	case g.denied:
		r.SettingsURL = g.settingsURL
	}
	return r
}
