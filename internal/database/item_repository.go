package database

import (
	"fmt"
	"time"

	"github.com/example/polybot/pkg/models"
	"github.com/google/uuid"
)

// ItemRepository handles database operations for learning items
type ItemRepository struct{}

// NewItemRepository creates a new repository instance
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

const itemColumns = `id, video_id, user_id, language, type, head, tail, example, usage,
	priority, active, is_favorite, mastery_score, error_count, last_reviewed_at,
	created_at, updated_at`

// GetByID returns a learning item by ID
func (r *ItemRepository) GetByID(id string) (*models.LearningItem, error) {
	var item models.LearningItem
	query := DB.Rebind("SELECT " + itemColumns + " FROM learning_items WHERE id = ?")
	err := DB.Get(&item, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning item by ID: %v", err)
	}
	return &item, nil
}

// ListByUser returns all items belonging to a user
func (r *ItemRepository) ListByUser(userID int64) ([]models.LearningItem, error) {
	var items []models.LearningItem
	query := DB.Rebind("SELECT " + itemColumns + " FROM learning_items WHERE user_id = ? ORDER BY created_at DESC")
	err := DB.Select(&items, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning items: %v", err)
	}
	return items, nil
}

// ListByLanguage returns a user's items for one language
func (r *ItemRepository) ListByLanguage(userID int64, language string) ([]models.LearningItem, error) {
	var items []models.LearningItem
	query := DB.Rebind("SELECT " + itemColumns + " FROM learning_items WHERE user_id = ? AND language = ? ORDER BY created_at DESC")
	err := DB.Select(&items, query, userID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning items by language: %v", err)
	}
	return items, nil
}

// ListByVideo returns all items attached to a video
func (r *ItemRepository) ListByVideo(videoID string) ([]models.LearningItem, error) {
	var items []models.LearningItem
	query := DB.Rebind("SELECT " + itemColumns + " FROM learning_items WHERE video_id = ? ORDER BY created_at ASC")
	err := DB.Select(&items, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning items by video: %v", err)
	}
	return items, nil
}

// Create inserts a new learning item
func (r *ItemRepository) Create(item *models.LearningItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Priority == "" {
		item.Priority = models.PriorityMed
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := DB.Rebind(`
		INSERT INTO learning_items (
			id, video_id, user_id, language, type, head, tail, example, usage,
			priority, active, is_favorite, mastery_score, error_count, last_reviewed_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(query,
		item.ID,
		item.VideoID,
		item.UserID,
		item.Language,
		item.Type,
		item.Head,
		item.Tail,
		item.Example,
		item.Usage,
		item.Priority,
		item.Active,
		item.IsFavorite,
		item.MasteryScore,
		item.ErrorCount,
		item.LastReviewedAt,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create learning item: %v", err)
	}
	return nil
}

// Update modifies an existing learning item
func (r *ItemRepository) Update(item *models.LearningItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := DB.Rebind(`
		UPDATE learning_items SET
			video_id = ?,
			language = ?,
			type = ?,
			head = ?,
			tail = ?,
			example = ?,
			usage = ?,
			priority = ?,
			active = ?,
			is_favorite = ?,
			mastery_score = ?,
			error_count = ?,
			last_reviewed_at = ?,
			updated_at = ?
		WHERE id = ?
	`)
	_, err := DB.Exec(query,
		item.VideoID,
		item.Language,
		item.Type,
		item.Head,
		item.Tail,
		item.Example,
		item.Usage,
		item.Priority,
		item.Active,
		item.IsFavorite,
		item.MasteryScore,
		item.ErrorCount,
		item.LastReviewedAt,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learning item: %v", err)
	}
	return nil
}

// Delete removes a learning item
func (r *ItemRepository) Delete(id string) error {
	_, err := DB.Exec(DB.Rebind("DELETE FROM learning_items WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete learning item: %v", err)
	}
	return nil
}

// ToggleActive flips the soft-delete/inclusion flag
func (r *ItemRepository) ToggleActive(id string) error {
	query := DB.Rebind("UPDATE learning_items SET active = NOT active, updated_at = ? WHERE id = ?")
	_, err := DB.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle active flag: %v", err)
	}
	return nil
}

// ToggleFavorite flips the user pin, independent of mastery
func (r *ItemRepository) ToggleFavorite(id string) error {
	query := DB.Rebind("UPDATE learning_items SET is_favorite = NOT is_favorite, updated_at = ? WHERE id = ?")
	_, err := DB.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite flag: %v", err)
	}
	return nil
}

// MarkReviewed records a review event: sets the mastery score
// (clamped to 0-100) and stamps last_reviewed_at
func (r *ItemRepository) MarkReviewed(id string, mastery float64) error {
	if mastery < 0 {
		mastery = 0
	}
	if mastery > 100 {
		mastery = 100
	}
	now := time.Now().UTC()
	query := DB.Rebind("UPDATE learning_items SET mastery_score = ?, last_reviewed_at = ?, updated_at = ? WHERE id = ?")
	_, err := DB.Exec(query, mastery, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to mark item reviewed: %v", err)
	}
	return nil
}

// ReportError records a stumble on an item: increments the error count
// and decays the mastery score by exactly 10 points, floored at 0. The
// review-queue threshold (mastery < 80) is calibrated against this
// decay rate.
func (r *ItemRepository) ReportError(id string) (*models.LearningItem, error) {
	item, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.ErrorCount++
	item.MasteryScore -= 10
	if item.MasteryScore < 0 {
		item.MasteryScore = 0
	}
	now := time.Now().UTC()
	item.LastReviewedAt = &now

	if err := r.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}
