package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/polybot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by Telegram ID
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	query := DB.Rebind("SELECT * FROM users WHERE telegram_id = ?")
	err := DB.Get(&user, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}
	return &user, nil
}

// GetOrCreate returns the stored user, creating a record with default
// study settings on first contact
func (r *UserRepository) GetOrCreate(user *models.User) (*models.User, error) {
	var stored models.User
	query := DB.Rebind("SELECT * FROM users WHERE telegram_id = ?")
	err := DB.Get(&stored, query, user.ID)
	if err == nil {
		return &stored, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	if user.TargetLanguage == "" {
		user.TargetLanguage = "EN"
	}
	if user.Level == "" {
		user.Level = "B1"
	}
	if user.DurationSeconds == 0 {
		user.DurationSeconds = 60
	}
	if user.NotificationHour == 0 {
		user.NotificationHour = 9
	}
	user.NotificationEnabled = true

	insert := DB.Rebind(`
		INSERT INTO users (
			telegram_id, username, first_name, last_name, is_admin,
			target_language, level, persona, duration_seconds,
			notification_enabled, notification_hour
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.Exec(insert,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.IsAdmin,
		user.TargetLanguage,
		user.Level,
		user.Persona,
		user.DurationSeconds,
		user.NotificationEnabled,
		user.NotificationHour,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return r.GetByID(user.ID)
}

// Update modifies a user's study settings
func (r *UserRepository) Update(user *models.User) error {
	query := DB.Rebind(`
		UPDATE users SET
			username = ?,
			first_name = ?,
			last_name = ?,
			target_language = ?,
			level = ?,
			persona = ?,
			duration_seconds = ?,
			notification_enabled = ?,
			notification_hour = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = ?
	`)
	_, err := DB.Exec(query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.TargetLanguage,
		user.Level,
		user.Persona,
		user.DurationSeconds,
		user.NotificationEnabled,
		user.NotificationHour,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// GetUsersForNotification returns users who want a reminder at the
// given hour of day
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	query := DB.Rebind("SELECT * FROM users WHERE notification_enabled = true AND notification_hour = ?")
	err := DB.Select(&users, query, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}
