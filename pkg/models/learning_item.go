package models

import "time"

// ItemType classifies what kind of fact a learning item records
type ItemType string

const (
	ItemTypeGrammar ItemType = "grammar"
	ItemTypeVocab   ItemType = "vocab"
	ItemTypePhrase  ItemType = "phrase"
	ItemTypeMistake ItemType = "mistake"
)

// Priority is the coarse user-assigned priority of an item
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMed  Priority = "med"
	PriorityHigh Priority = "high"
)

// LearningItem represents a single atomic fact to be reinforced:
// a grammar pattern, a word, a phrase or a recorded mistake
type LearningItem struct {
	ID             string     `json:"id" db:"id"`
	VideoID        string     `json:"video_id" db:"video_id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	Language       string     `json:"language" db:"language"`
	Type           ItemType   `json:"type" db:"type"`
	Head           string     `json:"head" db:"head"` // pattern, word, phrase or the wrong form
	Tail           string     `json:"tail" db:"tail"` // meaning, or the corrected form for mistakes
	Example        string     `json:"example" db:"example"`
	Usage          string     `json:"usage" db:"usage"`
	Priority       Priority   `json:"priority" db:"priority"`
	Active         bool       `json:"active" db:"active"`
	IsFavorite     bool       `json:"is_favorite" db:"is_favorite"`
	MasteryScore   float64    `json:"mastery_score" db:"mastery_score"` // 0-100 retention estimate
	ErrorCount     int        `json:"error_count" db:"error_count"`     // times the user stumbled on this item
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
