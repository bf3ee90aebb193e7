package database

import (
	"testing"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptRepository_VersioningAndActiveLookup(t *testing.T) {
	setupTestDB(t)
	videos := NewVideoRepository()
	repo := NewScriptRepository()

	video := &models.Video{Slug: "ep1", UserID: 1}
	require.NoError(t, videos.Create(video))

	first := &models.Script{VideoID: video.ID, Language: "EN", Level: "base", Text: "one"}
	require.NoError(t, repo.Create(first))
	assert.Equal(t, 1, first.Version)

	second := &models.Script{VideoID: video.ID, Language: "EN", Level: "base", Text: "two"}
	require.NoError(t, repo.Create(second))
	assert.Equal(t, 2, second.Version)

	active, err := repo.GetActive(video.ID, "EN")
	require.NoError(t, err)
	assert.Equal(t, "two", active.Text)

	scripts, err := repo.ListByVideo(video.ID)
	require.NoError(t, err)
	require.Len(t, scripts, 2)
}
