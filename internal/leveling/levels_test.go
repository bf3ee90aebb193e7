package leveling

import (
	"testing"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsWithMastery(count int, mastery float64) []models.LearningItem {
	items := make([]models.LearningItem, count)
	for i := range items {
		items[i].MasteryScore = mastery
	}
	return items
}

func TestCalculateLevelStats_Empty(t *testing.T) {
	stats := CalculateLevelStats(nil)

	assert.Equal(t, "A1", stats.CurrentLevel)
	assert.Equal(t, 0, stats.ProgressPercent)
	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, 0, stats.AverageMastery)
}

func TestCalculateLevelStats_BetweenThresholds(t *testing.T) {
	// 200 items fully mastered -> effective vocab 200, past A1 (100)
	// but short of A2 (500): progress is (200-100)/(500-100) = 25%
	stats := CalculateLevelStats(itemsWithMastery(200, 100))

	assert.Equal(t, "A1", stats.CurrentLevel)
	assert.Equal(t, "A2", stats.NextLevel)
	assert.Equal(t, 25, stats.ProgressPercent)
	assert.Equal(t, 200, stats.TotalItems)
	assert.Equal(t, 100, stats.AverageMastery)
}

func TestCalculateLevelStats_BelowFirstThreshold(t *testing.T) {
	// 100 items at 50 mastery -> effective vocab 50, halfway to A1
	stats := CalculateLevelStats(itemsWithMastery(100, 50))

	assert.Equal(t, "A1", stats.CurrentLevel)
	assert.Equal(t, "A1", stats.NextLevel)
	assert.Equal(t, 50, stats.ProgressPercent)
}

func TestCalculateLevelStats_MaxLevel(t *testing.T) {
	// 10000 items fully mastered -> past the C2 threshold
	stats := CalculateLevelStats(itemsWithMastery(10000, 100))

	assert.Equal(t, "C2", stats.CurrentLevel)
	assert.Equal(t, "", stats.NextLevel)
	assert.Equal(t, 100, stats.ProgressPercent)
}

func TestCalculateLevelStats_NeverFullBelowMaxLevel(t *testing.T) {
	// Sit just under the A2 threshold: progress must cap at 99
	stats := CalculateLevelStats(itemsWithMastery(499, 100))

	require.Equal(t, "A1", stats.CurrentLevel)
	assert.LessOrEqual(t, stats.ProgressPercent, 99)
}

func TestCalculateLevelStats_MonotonicInMastery(t *testing.T) {
	prev := -1 << 20
	for _, mastery := range []float64{0, 10, 25, 50, 75, 90, 100} {
		stats := CalculateLevelStats(itemsWithMastery(150, mastery))
		rank := stageRank(stats)
		assert.GreaterOrEqual(t, rank, prev, "mastery %v", mastery)
		prev = rank
	}
}

func TestCalculateLevelStats_MonotonicInCount(t *testing.T) {
	prev := -1 << 20
	for _, count := range []int{0, 50, 150, 600, 1500, 5000, 9000} {
		stats := CalculateLevelStats(itemsWithMastery(count, 80))
		rank := stageRank(stats)
		assert.GreaterOrEqual(t, rank, prev, "count %v", count)
		prev = rank
	}
}

// stageRank collapses (level, progress) into a single comparable value.
// Progress toward A1 itself (NextLevel == CurrentLevel) ranks below an
// attained A1.
func stageRank(stats LevelStats) int {
	stage := -1
	if stats.NextLevel != stats.CurrentLevel {
		for i, l := range Levels {
			if l == stats.CurrentLevel {
				stage = i
			}
		}
	}
	return stage*1000 + stats.ProgressPercent
}
