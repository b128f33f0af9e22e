package access

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aouyang1/theframe/store"
)

type memStore struct {
	access store.Access
}

func (m *memStore) GetAccess() (*store.Access, error) {
	a := m.access
	return &a, nil
}

func (m *memStore) UpsertAccess(a *store.Access) error {
	m.access = *a
	return nil
}

func answer(accept bool) Prompt {
	return func(context.Context) (bool, error) { return accept, nil }
}

func newTestGate(t *testing.T) (*Gate, *memStore) {
	t.Helper()
	st := &memStore{}
	return NewGate(st, t.TempDir(), "/settings", "/access/settings"), st
}

func TestDeniedThenGranted(t *testing.T) {
	g, st := newTestGate(t)
	ctx := context.Background()

	if got := g.Status().State; got != Unknown {
		t.Fatalf("initial state = %v", got)
	}

	res, err := g.Request(ctx, answer(false))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Denied || res.SettingsURL != "/access/settings" || res.Next != "" {
		t.Fatalf("after refusal = %+v", res)
	}

	res, err = g.Request(ctx, answer(true))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Granted || res.Next != "/settings" || res.SettingsURL != "" {
		t.Fatalf("after grant = %+v", res)
	}
	if !st.access.Granted {
		t.Fatal("consent not stored")
	}
}

func TestHeldSkipsPrompt(t *testing.T) {
	g, st := newTestGate(t)
	st.access.Granted = true

	asked := false
	res, err := g.Request(context.Background(), func(context.Context) (bool, error) {
		asked = true
		return false, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if asked {
		t.Fatal("prompt shown while access is held")
	}
	if res.State != Granted {
		t.Fatalf("state = %v", res.State)
	}
}

func TestUnreadableRootDenies(t *testing.T) {
	st := &memStore{}
	g := NewGate(st, filepath.Join(t.TempDir(), "missing"), "/settings", "/access/settings")

	res, err := g.Request(context.Background(), answer(true))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Denied {
		t.Fatalf("state = %v, want denied", res.State)
	}
}

func TestPromptError(t *testing.T) {
	g, _ := newTestGate(t)
	_, err := g.Request(context.Background(), func(context.Context) (bool, error) {
		return false, errors.New("closed")
	})
	if err == nil {
		t.Fatal("expected prompt error")
	}
	if got := g.Status().State; got != Unknown {
		t.Fatalf("state = %v, want unknown", got)
	}
}

func TestRevoke(t *testing.T) {
	g, _ := newTestGate(t)
	if _, err := g.Request(context.Background(), answer(true)); err != nil {
		t.Fatal(err)
	}
	if err := g.Revoke(); err != nil {
		t.Fatal(err)
	}
	if got := g.Status().State; got != Unknown {
		t.Fatalf("state after revoke = %v", got)
	}
}

func TestStateText(t *testing.T) {
	for s, want := range map[State]string{Unknown: "unknown", Granted: "granted", Denied: "denied", State(9): "State(9)"} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestRefusalSurvivesRestart(t *testing.T) {
	g, st := newTestGate(t)
	if _, err := g.Request(context.Background(), answer(false)); err != nil {
		t.Fatal(err)
	}

	restarted := NewGate(st, g.root, "/settings", "/access/settings")
	res := restarted.Status()
	if res.State != Denied || res.SettingsURL != "/access/settings" {
		t.Fatalf("after restart = %+v", res)
	}

	res, err := restarted.Request(context.Background(), answer(true))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Granted || res.Next != "/settings" {
		t.Fatalf("grant after restart = %+v", res)
	}

	if err := restarted.Revoke(); err != nil {
		t.Fatal(err)
	}
	if got := NewGate(st, g.root, "/settings", "/access/settings").Status().State; got != Unknown {
		t.Fatalf("state after revoke and restart = %v, want unknown", got)
	}
}
