package selection

import (
	"testing"
	"time"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectItems_WeakAndReviewSplit(t *testing.T) {
	items := []models.LearningItem{
		{ID: "1", Language: "EN", ErrorCount: 3, MasteryScore: 50},
		{ID: "2", Language: "EN", ErrorCount: 0, MasteryScore: 20},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 1, ReviewCount: 1}, "EN")

	require.Len(t, sel.WeakItems, 1)
	require.Len(t, sel.ReviewItems, 1)
	assert.Equal(t, "1", sel.WeakItems[0].ID)
	assert.Equal(t, "2", sel.ReviewItems[0].ID)
}

func TestSelectItems_FiltersByLanguage(t *testing.T) {
	items := []models.LearningItem{
		{ID: "1", Language: "EN", ErrorCount: 2},
		{ID: "2", Language: "JP", ErrorCount: 5},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 5, ReviewCount: 5}, "EN")

	require.Len(t, sel.WeakItems, 1)
	assert.Equal(t, "1", sel.WeakItems[0].ID)
}

func TestSelectItems_LanguageTagCaseInsensitive(t *testing.T) {
	items := []models.LearningItem{
		{ID: "1", Language: "en", ErrorCount: 2},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 1}, "EN")

	require.Len(t, sel.WeakItems, 1)
	assert.Equal(t, "1", sel.WeakItems[0].ID)
}

func TestSelectItems_WeakSortedByErrorCountDesc(t *testing.T) {
	items := []models.LearningItem{
		{ID: "a", Language: "EN", ErrorCount: 1},
		{ID: "b", Language: "EN", ErrorCount: 4},
		{ID: "c", Language: "EN", ErrorCount: 2},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 3}, "EN")

	require.Len(t, sel.WeakItems, 3)
	assert.Equal(t, []string{"b", "c", "a"}, ids(sel.WeakItems))
}

func TestSelectItems_WeakTiesKeepOriginalOrder(t *testing.T) {
	items := []models.LearningItem{
		{ID: "a", Language: "EN", ErrorCount: 2},
		{ID: "b", Language: "EN", ErrorCount: 2},
		{ID: "c", Language: "EN", ErrorCount: 2},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 3}, "EN")

	assert.Equal(t, []string{"a", "b", "c"}, ids(sel.WeakItems))
}

func TestSelectItems_ReviewExcludesWeakAndSortsOldestFirst(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []models.LearningItem{
		{ID: "weak", Language: "EN", ErrorCount: 1, MasteryScore: 10},
		{ID: "recent", Language: "EN", MasteryScore: 30, LastReviewedAt: &recent},
		{ID: "old", Language: "EN", MasteryScore: 30, LastReviewedAt: &old},
		{ID: "never", Language: "EN", MasteryScore: 30},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 1, ReviewCount: 3}, "EN")

	require.Len(t, sel.WeakItems, 1)
	assert.Equal(t, []string{"never", "old", "recent"}, ids(sel.ReviewItems))
	assertDisjoint(t, sel)
}

func TestSelectItems_ReviewSkipsHighMastery(t *testing.T) {
	items := []models.LearningItem{
		{ID: "known", Language: "EN", MasteryScore: 80},
		{ID: "shaky", Language: "EN", MasteryScore: 79.9},
	}

	sel := SelectItems(items, SlotConfig{ReviewCount: 5}, "EN")

	assert.Equal(t, []string{"shaky"}, ids(sel.ReviewItems))
}

func TestSelectItems_BucketsNeverExceedBudget(t *testing.T) {
	var items []models.LearningItem
	for i := 0; i < 20; i++ {
		items = append(items, models.LearningItem{
			ID:         string(rune('a' + i)),
			Language:   "EN",
			ErrorCount: i % 3,
		})
	}

	sel := SelectItems(items, SlotConfig{WeakCount: 2, ReviewCount: 4}, "EN")

	assert.LessOrEqual(t, len(sel.WeakItems), 2)
	assert.LessOrEqual(t, len(sel.ReviewItems), 4)
	assertDisjoint(t, sel)
}

func TestSelectItems_NegativeCountsClampToZero(t *testing.T) {
	items := []models.LearningItem{
		{ID: "1", Language: "EN", ErrorCount: 3},
	}

	sel := SelectItems(items, SlotConfig{WeakCount: -1, ReviewCount: -5}, "EN")

	assert.Empty(t, sel.WeakItems)
	assert.Empty(t, sel.ReviewItems)
}

func ids(items []models.LearningItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func assertDisjoint(t *testing.T, sel Selection) {
	t.Helper()
	seen := make(map[string]bool)
	for _, item := range sel.WeakItems {
		seen[item.ID] = true
	}
	for _, item := range sel.ReviewItems {
		assert.False(t, seen[item.ID], "item %s in both buckets", item.ID)
	}
}
