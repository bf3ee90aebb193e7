package database

import (
	"testing"

	"github.com/example/polybot/internal/selection"
	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, repo *ItemRepository, item models.LearningItem) *models.LearningItem {
	t.Helper()
	if item.UserID == 0 {
		item.UserID = 1
	}
	if item.Language == "" {
		item.Language = "EN"
	}
	if item.Type == "" {
		item.Type = models.ItemTypeVocab
	}
	if item.Head == "" {
		item.Head = "head"
	}
	if item.Tail == "" {
		item.Tail = "tail"
	}
	require.NoError(t, repo.Create(&item))
	return &item
}

func TestItemRepository_MarkReviewedClampsAndStamps(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	item := newTestItem(t, repo, models.LearningItem{Active: true, MasteryScore: 50})

	require.NoError(t, repo.MarkReviewed(item.ID, 120))
	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.MasteryScore)
	require.NotNil(t, got.LastReviewedAt)

	require.NoError(t, repo.MarkReviewed(item.ID, -5))
	got, err = repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.MasteryScore)
}

func TestItemRepository_MarkReviewedGraduatesFromReviewQueue(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	item := newTestItem(t, repo, models.LearningItem{Active: true})

	items, err := repo.ListByLanguage(1, "EN")
	require.NoError(t, err)
	sel := selection.SelectItems(items, selection.DefaultSlotConfig(), "EN")
	require.Len(t, sel.ReviewItems, 1)

	require.NoError(t, repo.MarkReviewed(item.ID, 90))

	items, err = repo.ListByLanguage(1, "EN")
	require.NoError(t, err)
	sel = selection.SelectItems(items, selection.DefaultSlotConfig(), "EN")
	assert.Empty(t, sel.ReviewItems)
}

func TestItemRepository_ToggleActive(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	item := newTestItem(t, repo, models.LearningItem{Active: true})

	require.NoError(t, repo.ToggleActive(item.ID))
	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, repo.ToggleActive(item.ID))
	got, err = repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestItemRepository_ReportErrorDecaysFlooredAtZero(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	item := newTestItem(t, repo, models.LearningItem{Active: true, MasteryScore: 5})

	got, err := repo.ReportError(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.MasteryScore)
	assert.Equal(t, 1, got.ErrorCount)
	require.NotNil(t, got.LastReviewedAt)

	got, err = repo.ReportError(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.MasteryScore)
	assert.Equal(t, 2, got.ErrorCount)
}

func TestItemRepository_Delete(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	item := newTestItem(t, repo, models.LearningItem{Active: true})

	require.NoError(t, repo.Delete(item.ID))
	_, err := repo.GetByID(item.ID)
	assert.Error(t, err)
}

func TestItemRepository_ListByVideo(t *testing.T) {
	setupTestDB(t)
	repo := NewItemRepository()
	newTestItem(t, repo, models.LearningItem{VideoID: "v1", Head: "a"})
	newTestItem(t, repo, models.LearningItem{VideoID: "v1", Head: "b"})
	newTestItem(t, repo, models.LearningItem{VideoID: "v2", Head: "c"})

	items, err := repo.ListByVideo("v1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
