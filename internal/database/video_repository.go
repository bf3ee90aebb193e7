package database

import (
	"fmt"
	"time"

	"github.com/example/polybot/pkg/models"
	"github.com/google/uuid"
)

// VideoRepository handles database operations for video projects
type VideoRepository struct{}

// NewVideoRepository creates a new repository instance
func NewVideoRepository() *VideoRepository {
	return &VideoRepository{}
}

// List returns all videos of a user, newest first
func (r *VideoRepository) List(userID int64) ([]models.Video, error) {
	var videos []models.Video
	query := DB.Rebind("SELECT * FROM videos WHERE user_id = ? ORDER BY created_at DESC")
	err := DB.Select(&videos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %v", err)
	}
	return videos, nil
}

// GetBySlug returns a user's video by its short identifier
func (r *VideoRepository) GetBySlug(userID int64, slug string) (*models.Video, error) {
	var video models.Video
	query := DB.Rebind("SELECT * FROM videos WHERE user_id = ? AND slug = ?")
	err := DB.Get(&video, query, userID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get video by slug: %v", err)
	}
	return &video, nil
}

// GetLatest returns the user's most recently created video
func (r *VideoRepository) GetLatest(userID int64) (*models.Video, error) {
	var video models.Video
	query := DB.Rebind("SELECT * FROM videos WHERE user_id = ? ORDER BY created_at DESC LIMIT 1")
	err := DB.Get(&video, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest video: %v", err)
	}
	return &video, nil
}

// Create inserts a new video project
func (r *VideoRepository) Create(video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.Status == "" {
		video.Status = models.VideoStatusDraft
	}
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	query := DB.Rebind(`
		INSERT INTO videos (id, slug, user_id, title, date, location, memo, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(query,
		video.ID,
		video.Slug,
		video.UserID,
		video.Title,
		video.Date,
		video.Location,
		video.Memo,
		video.Status,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %v", err)
	}
	return nil
}

// UpdateStatus moves a video through its lifecycle
func (r *VideoRepository) UpdateStatus(id string, status models.VideoStatus) error {
	query := DB.Rebind("UPDATE videos SET status = ?, updated_at = ? WHERE id = ?")
	_, err := DB.Exec(query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update video status: %v", err)
	}
	return nil
}
