package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/settings"
	"github.com/aouyang1/theframe/transition"
)

func TestSettingsPage(t *testing.T) {
	t.Run("empty library", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Settings(settings.View{Effect: transition.Zoom, EffectDurationSeconds: 1.2, PhotoIntervalSeconds: 4}).Render(context.Background(), &buf); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No photos found.") || !strings.Contains(buf.String(), `value="Zoom" checked>`) {
			t.Fatalf("page = %s", buf.String())
		}
	})

	t.Run("strip", func(t *testing.T) {
		view := settings.View{
			Photos:       []library.PhotoID{"a b.jpg", "c.jpg"},
			PreviewIndex: 1,
			PreviewPhoto: "c.jpg",
		}
		var buf bytes.Buffer
		if err := Settings(view).Render(context.Background(), &buf); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{
			`action="/settings/select/a%20b.jpg"`,
			`src="/photos/c.jpg/thumbnail?size=preview"`,
			`alt="1" data-selected>`,
		} {
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("page missing %q: %s", want, buf.String())
			}
		}
		if strings.Contains(buf.String(), `alt="0" data-selected`) {
			t.Fatal("unselected thumbnail marked")
		}
	})
}
