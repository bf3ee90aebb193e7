package models

// User represents a Telegram user using the bot
type User struct {
	ID                  int64  `json:"id" db:"telegram_id"` // Telegram User ID
	Username            string `json:"username" db:"username"`
	FirstName           string `json:"first_name" db:"first_name"`
	LastName            string `json:"last_name" db:"last_name"`
	IsAdmin             bool   `json:"is_admin" db:"is_admin"`
	TargetLanguage      string `json:"target_language" db:"target_language"` // language tag, e.g. EN, JP
	Level               string `json:"level" db:"level"`                     // CEFR tag A1-C2
	Persona             string `json:"persona" db:"persona"`                 // optional style to imitate
	DurationSeconds     int    `json:"duration_seconds" db:"duration_seconds"`
	NotificationEnabled bool   `json:"notification_enabled" db:"notification_enabled"`
	NotificationHour    int    `json:"notification_hour" db:"notification_hour"` // Hour of day for reminders (0-23)
	CreatedAt           string `json:"created_at" db:"created_at"`
	UpdatedAt           string `json:"updated_at" db:"updated_at"`
}
