package database

import (
	"fmt"
	"time"

	"github.com/example/polybot/pkg/models"
	"github.com/google/uuid"
)

// ScriptRepository handles database operations for script versions
type ScriptRepository struct{}

// NewScriptRepository creates a new repository instance
func NewScriptRepository() *ScriptRepository {
	return &ScriptRepository{}
}

// GetActive returns the active script of a video for one language
func (r *ScriptRepository) GetActive(videoID, language string) (*models.Script, error) {
	var script models.Script
	query := DB.Rebind(`
		SELECT * FROM scripts
		WHERE video_id = ? AND language = ? AND active = true
		ORDER BY version DESC LIMIT 1
	`)
	err := DB.Get(&script, query, videoID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to get active script: %v", err)
	}
	return &script, nil
}

// ListByVideo returns all script versions of a video
func (r *ScriptRepository) ListByVideo(videoID string) ([]models.Script, error) {
	var scripts []models.Script
	query := DB.Rebind("SELECT * FROM scripts WHERE video_id = ? ORDER BY language, version DESC")
	err := DB.Select(&scripts, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scripts: %v", err)
	}
	return scripts, nil
}

// Create inserts a new script version. The version number continues
// from the highest existing version for the same video and language,
// and earlier versions are deactivated.
func (r *ScriptRepository) Create(script *models.Script) error {
	if script.ID == "" {
		script.ID = uuid.NewString()
	}
	script.CreatedAt = time.Now().UTC()

	var maxVersion int
	query := DB.Rebind("SELECT COALESCE(MAX(version), 0) FROM scripts WHERE video_id = ? AND language = ?")
	if err := DB.Get(&maxVersion, query, script.VideoID, script.Language); err != nil {
		return fmt.Errorf("failed to get script version: %v", err)
	}
	script.Version = maxVersion + 1
	script.Active = true

	deactivate := DB.Rebind("UPDATE scripts SET active = false WHERE video_id = ? AND language = ?")
	if _, err := DB.Exec(deactivate, script.VideoID, script.Language); err != nil {
		return fmt.Errorf("failed to deactivate old scripts: %v", err)
	}

	insert := DB.Rebind(`
		INSERT INTO scripts (id, video_id, language, level, version, text, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(insert,
		script.ID,
		script.VideoID,
		script.Language,
		script.Level,
		script.Version,
		script.Text,
		script.Active,
		script.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create script: %v", err)
	}
	return nil
}
