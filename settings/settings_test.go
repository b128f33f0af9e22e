package settings

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/store"
	"github.com/aouyang1/theframe/transition"
)

type memStore struct {
	saved *store.AppSettings
	err   error
}

func (m *memStore) GetAppSettings() (*store.AppSettings, error) {
	if m.saved == nil {
		return store.DefaultAppSettings(), nil
	}
	s := *m.saved
	return &s, nil
}

func (m *memStore) UpsertAppSettings(s *store.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	c := *s
	m.saved = &c
	return nil
}

func photos(n int) []library.PhotoID {
	out := make([]library.PhotoID, n)
	for i := range out {
		out[i] = library.PhotoID(fmt.Sprintf("p%d", i))
	}
	return out
}

func TestDefaults(t *testing.T) {
	s, err := New(&memStore{}, photos(3))
	if err != nil {
		t.Fatal(err)
	}
	v := s.View()
	if v.Effect != transition.Fade || v.EffectDurationSeconds != 1.2 || v.PhotoIntervalSeconds != 4 {
		t.Fatalf("defaults = %+v", v)
	}
	if v.PreviewIndex != 0 || v.PreviewPhoto != "p0" {
		t.Fatalf("preview = %d %q", v.PreviewIndex, v.PreviewPhoto)
	}
}

func TestSelectPhotoSetsPreviewIndex(t *testing.T) {
	s, err := New(nil, photos(5))
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{3, 0, 4} {
		id := library.PhotoID(fmt.Sprintf("p%d", i))
		if !s.SelectPhoto(id) {
			t.Fatalf("SelectPhoto(%s) = false", id)
		}
		if got := s.View().PreviewIndex; got != i {
			t.Fatalf("preview index = %d, want %d", got, i)
		}
	}
	if s.SelectPhoto("unknown") {
		t.Fatal("unknown photo should be ignored")
	}
	if got := s.View().PreviewIndex; got != 4 {
		t.Fatalf("preview index changed to %d after unknown selection", got)
	}
}

func TestSliderClamping(t *testing.T) {
	s, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ in, want float64 }{
		{0.1, 0.5},
		{2.5, 2.5},
		{9, 8},
	}
	for _, tt := range tests {
		if got := s.SetPhotoInterval(tt.in); got != tt.want {
			t.Errorf("SetPhotoInterval(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := s.View().PhotoIntervalSeconds; got != tt.want {
			t.Errorf("view interval = %v, want %v", got, tt.want)
		}
		if got := s.SetEffectDuration(tt.in); got != tt.want {
			t.Errorf("SetEffectDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyPersists(t *testing.T) {
	st := &memStore{}
	s, err := New(st, photos(4))
	if err != nil {
		t.Fatal(err)
	}
	s.SetEffect(transition.Slide)
	s.SetEffectDuration(2)
	s.SetPhotoInterval(6)
	s.SelectPhoto("p2")

	params, err := s.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if params.Effect != transition.Slide || params.EffectDuration != 2*time.Second ||
		params.PhotoInterval != 6*time.Second || params.StartIndex != 2 {
		t.Fatalf("params = %+v", params)
	}
	want := store.AppSettings{Effect: "Slide", EffectDurationSeconds: 2, PhotoIntervalSeconds: 6, StartIndex: 2}
	if st.saved == nil || *st.saved != want {
		t.Fatalf("saved = %+v, want %+v", st.saved, want)
	}

	// the next visit starts from the saved values with the preview reset
	next, err := New(st, photos(4))
	if err != nil {
		t.Fatal(err)
	}
	v := next.View()
	if v.Effect != transition.Slide || v.PhotoIntervalSeconds != 6 || v.PreviewIndex != 0 {
		t.Fatalf("next visit view = %+v", v)
	}
}

func TestApplySaveError(t *testing.T) {
	s, err := New(&memStore{err: errors.New("disk full")}, photos(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Apply(); err == nil {
		t.Fatal("expected save error")
	}
}
