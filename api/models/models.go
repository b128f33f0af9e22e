// Package models tracks all api models for request and responses
package models

import (
	"github.com/aouyang1/theframe/access"
	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/settings"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// AccessRequest carries the operator's answer. It may be omitted when access is
// already held.
type AccessRequest struct {
	Grant *bool `json:"grant" form:"grant"`
}

type AccessResponse = access.Result

type UpdateSettingsRequest struct {
	Effect                *string  `json:"effect" form:"effect" binding:"omitempty,oneof=Fade Slide Zoom fade slide zoom"`
	EffectDurationSeconds *float64 `json:"effect_duration_seconds" form:"effect_duration_seconds" binding:"omitempty,gt=0"`
	PhotoIntervalSeconds  *float64 `json:"photo_interval_seconds" form:"photo_interval_seconds" binding:"omitempty,gt=0"`
}

type SettingsResponse = settings.View

// LaunchQuery is the photo view's query string. Missing values fall back to the
// defaults.
type LaunchQuery struct {
	Effect         string   `form:"effect" binding:"omitempty,oneof=Fade Slide Zoom fade slide zoom"`
	EffectDuration *float64 `form:"effect_duration" binding:"omitempty,gt=0"`
	PhotoInterval  *float64 `form:"photo_interval" binding:"omitempty,gt=0"`
	StartIndex     int      `form:"start_index" binding:"gte=0"`
}

type LaunchParams struct {
	Effect                string  `json:"effect"`
	EffectDurationSeconds float64 `json:"effect_duration_seconds"`
	PhotoIntervalSeconds  float64 `json:"photo_interval_seconds"`
	StartIndex            int     `json:"start_index"`
	// Location opens the photo view with these params.
	Location string `json:"location"`
}

type FrameQuery struct {
	Width  int `form:"width" binding:"omitempty,min=1,max=4096"`
	Height int `form:"height" binding:"omitempty,min=1,max=4096"`
}

type MenuResponse struct {
	Visible bool `json:"visible"`
}

type PhotoListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=48"`
}

type PhotoEntry struct {
	PhotoID      library.PhotoID `json:"photo_id"`
	ThumbnailURL string          `json:"thumbnail_url"`
}

type PhotoListResponse struct {
	Photos []PhotoEntry `json:"photos"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
}

type ThumbnailQuery struct {
	Size string `form:"size" binding:"omitempty,oneof=strip preview frame"`
}
