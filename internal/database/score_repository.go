package database

import (
	"fmt"
	"time"

	"github.com/example/polybot/pkg/models"
	"github.com/google/uuid"
)

// ScoreRepository handles database operations for speaking scores
type ScoreRepository struct{}

// NewScoreRepository creates a new repository instance
func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{}
}

// ScoreAverages summarizes a video's practice history
type ScoreAverages struct {
	Sessions      int     `db:"sessions"`
	Pronunciation float64 `db:"pronunciation"`
	Grammar       float64 `db:"grammar"`
	Fluency       float64 `db:"fluency"`
	Clarity       float64 `db:"clarity"`
	Total         float64 `db:"total"`
}

// Create inserts a speaking score. Total is derived from the four axes.
func (r *ScoreRepository) Create(score *models.SpeakingScore) error {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.Date == "" {
		score.Date = time.Now().UTC().Format("2006-01-02")
	}
	score.Total = score.Pronunciation + score.Grammar + score.Fluency + score.Clarity
	score.CreatedAt = time.Now().UTC()

	query := DB.Rebind(`
		INSERT INTO speaking_scores (
			id, video_id, language, date, script_version,
			pronunciation, grammar, fluency, clarity, total,
			main_problem, improvement_tip, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.Exec(query,
		score.ID,
		score.VideoID,
		score.Language,
		score.Date,
		score.ScriptVersion,
		score.Pronunciation,
		score.Grammar,
		score.Fluency,
		score.Clarity,
		score.Total,
		score.MainProblem,
		score.ImprovementTip,
		score.Comment,
		score.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create speaking score: %v", err)
	}
	return nil
}

// ListByVideo returns all scores recorded for a video, newest first
func (r *ScoreRepository) ListByVideo(videoID string) ([]models.SpeakingScore, error) {
	var scores []models.SpeakingScore
	query := DB.Rebind("SELECT * FROM speaking_scores WHERE video_id = ? ORDER BY created_at DESC")
	err := DB.Select(&scores, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get speaking scores: %v", err)
	}
	return scores, nil
}

// Averages returns per-axis averages over a video's practice sessions
func (r *ScoreRepository) Averages(videoID string) (*ScoreAverages, error) {
	var avg ScoreAverages
	query := DB.Rebind(`
		SELECT COUNT(*) AS sessions,
			COALESCE(AVG(pronunciation), 0) AS pronunciation,
			COALESCE(AVG(grammar), 0) AS grammar,
			COALESCE(AVG(fluency), 0) AS fluency,
			COALESCE(AVG(clarity), 0) AS clarity,
			COALESCE(AVG(total), 0) AS total
		FROM speaking_scores WHERE video_id = ?
	`)
	err := DB.Get(&avg, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score averages: %v", err)
	}
	return &avg, nil
}
