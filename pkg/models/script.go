package models

import "time"

// Script represents one language version of a video script.
// Several versions may exist per video and language; at most one is active.
type Script struct {
	ID        string    `json:"id" db:"id"`
	VideoID   string    `json:"video_id" db:"video_id"`
	Language  string    `json:"language" db:"language"`
	Level     string    `json:"level" db:"level"` // base, A, B, C
	Version   int       `json:"version" db:"version"`
	Text      string    `json:"text" db:"text"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
