package models

import (
	"strings"
	"time"
)

// Phase says whether a photo was taken before or after the service event.
type Phase string

const (
	PhaseBefore Phase = "BEFORE"
	PhaseAfter  Phase = "AFTER"
)

// NormalizePhase uppercases a raw phase value. Stored phases are always
// uppercase; anything that is not BEFORE sorts into the after bucket only
// when it equals AFTER.
func NormalizePhase(raw string) Phase {
	return Phase(strings.ToUpper(raw))
}

type Photo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecordID  uint      `json:"record_id" gorm:"not null;index"`
	Phase     Phase     `json:"phase" gorm:"not null"`
	URLPath   string    `json:"url_path" gorm:"not null"`
	Width     *int      `json:"width"`
	Height    *int      `json:"height"`
	Bytes     *int64    `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}
