package models

import "time"

// SpeakingScore records one speaking-practice session graded on four axes
type SpeakingScore struct {
	ID             string    `json:"id" db:"id"`
	VideoID        string    `json:"video_id" db:"video_id"`
	Language       string    `json:"language" db:"language"`
	Date           string    `json:"date" db:"date"`
	ScriptVersion  int       `json:"script_version" db:"script_version"`
	Pronunciation  int       `json:"pronunciation" db:"pronunciation"`
	Grammar        int       `json:"grammar" db:"grammar"`
	Fluency        int       `json:"fluency" db:"fluency"`
	Clarity        int       `json:"clarity" db:"clarity"`
	Total          int       `json:"total" db:"total"`
	MainProblem    string    `json:"main_problem" db:"main_problem"`
	ImprovementTip string    `json:"improvement_tip" db:"improvement_tip"`
	Comment        string    `json:"comment" db:"comment"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
