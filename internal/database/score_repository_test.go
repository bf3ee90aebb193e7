package database

import (
	"testing"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRepository_CreateAndAverages(t *testing.T) {
	setupTestDB(t)
	videos := NewVideoRepository()
	repo := NewScoreRepository()

	video := &models.Video{Slug: "ep1", UserID: 1}
	require.NoError(t, videos.Create(video))

	high := &models.SpeakingScore{
		VideoID: video.ID, Language: "EN", ScriptVersion: 1,
		Pronunciation: 20, Grammar: 20, Fluency: 20, Clarity: 20,
	}
	require.NoError(t, repo.Create(high))
	assert.Equal(t, 80, high.Total)

	low := &models.SpeakingScore{
		VideoID: video.ID, Language: "EN", ScriptVersion: 1,
		Pronunciation: 10, Grammar: 10, Fluency: 10, Clarity: 10,
	}
	require.NoError(t, repo.Create(low))

	scores, err := repo.ListByVideo(video.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	avg, err := repo.Averages(video.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, avg.Sessions)
	assert.InDelta(t, 15.0, avg.Pronunciation, 0.001)
	assert.InDelta(t, 60.0, avg.Total, 0.001)
}
