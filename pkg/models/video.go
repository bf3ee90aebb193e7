package models

import "time"

// VideoStatus tracks where a video project is in its lifecycle
type VideoStatus string

const (
	VideoStatusDraft      VideoStatus = "draft"
	VideoStatusPracticing VideoStatus = "practicing"
	VideoStatusRecorded   VideoStatus = "recorded"
	VideoStatusPosted     VideoStatus = "posted"
)

// Video represents a video project that learning items and scripts belong to
type Video struct {
	ID        string      `json:"id" db:"id"`
	Slug      string      `json:"video_id" db:"slug"` // user defined short identifier
	UserID    int64       `json:"user_id" db:"user_id"`
	Title     string      `json:"title" db:"title"`
	Date      string      `json:"date" db:"date"`
	Location  string      `json:"location" db:"location"`
	Memo      string      `json:"memo" db:"memo"`
	Status    VideoStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
