package store

import "time"

// Photo sources. Cloud photos are mirrored from S3 into the cloud directory.
const (
	SourceCloud = 0
	SourceLocal = 1
)

type Photo struct {
	PhotoID string `json:"photo_id"`
	// Path is relative to the library root.
	Path      string    `json:"path"`
	Source    int       `json:"source"`
	DateAdded time.Time `json:"date_added"`
}

type AppSettings struct {
	Effect                string  `json:"effect"`
	EffectDurationSeconds float64 `json:"effect_duration_seconds"`
	PhotoIntervalSeconds  float64 `json:"photo_interval_seconds"`
	StartIndex            int     `json:"start_index"`
}

type Access struct {
	Granted   bool      `json:"granted"`
	UpdatedAt time.Time `json:"updated_at"`
}
