// Package templates renders the three screens as templ components.
package templates

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/slideshow"
)

func ThumbnailURL(id library.PhotoID, size string) string {
	return fmt.Sprintf("/photos/%s/thumbnail?size=%s", url.PathEscape(id.String()), url.QueryEscape(size))
}

func selectURL(id library.PhotoID) string {
	return fmt.Sprintf("/settings/select/%s", url.PathEscape(id.String()))
}

// SlideshowURL opens the photo view with p.
func SlideshowURL(p slideshow.Params) string {
	q := url.Values{}
	q.Set("effect", p.Effect.String())
	q.Set("effect_duration", formatSeconds(p.EffectDuration.Seconds()))
	q.Set("photo_interval", formatSeconds(p.PhotoInterval.Seconds()))
	q.Set("start_index", strconv.Itoa(p.StartIndex))
	return "/slideshow?" + q.Encode()
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
