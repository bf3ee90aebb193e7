// Package selection picks which learning items go into a generation
// request, within per-bucket slot budgets.
//
// Language tags are matched case-insensitively. Callers upper-case tags
// at ingress, so this only matters for hand-entered item data.
package selection

import (
	"sort"
	"strings"
	"time"

	"github.com/example/polybot/pkg/models"
)

// SlotConfig is the slot budget for one generation request.
// NewCount is accepted but no "new" bucket is produced yet; the bucket
// passes below are independent so one can be added without touching
// the weak/review logic.
type SlotConfig struct {
	WeakCount   int `json:"weak_count"`
	ReviewCount int `json:"review_count"`
	NewCount    int `json:"new_count"`
}

// DefaultSlotConfig mirrors the builder defaults
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		WeakCount:   3,
		ReviewCount: 5,
		NewCount:    2,
	}
}

// Selection holds the ranked buckets produced by SelectItems.
// The buckets are disjoint by item ID.
type Selection struct {
	WeakItems   []models.LearningItem
	ReviewItems []models.LearningItem
}

// SelectItems deterministically partitions and ranks the item pool for
// one language. Weak items (stumbled on at least once) are ranked by
// error count, review items by how stale their last review is. Either
// bucket may come back shorter than requested if the pool is small.
func SelectItems(items []models.LearningItem, config SlotConfig, language string) Selection {
	langItems := make([]models.LearningItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Language, language) {
			langItems = append(langItems, item)
		}
	}

	weakItems := selectBucket(langItems, config.WeakCount,
		func(item models.LearningItem) bool { return item.ErrorCount > 0 },
		func(a, b models.LearningItem) bool { return a.ErrorCount > b.ErrorCount },
	)

	weakIDs := make(map[string]bool, len(weakItems))
	for _, item := range weakItems {
		weakIDs[item.ID] = true
	}

	reviewItems := selectBucket(langItems, config.ReviewCount,
		func(item models.LearningItem) bool {
			return !weakIDs[item.ID] && item.MasteryScore < 80
		},
		func(a, b models.LearningItem) bool {
			return reviewTime(a).Before(reviewTime(b))
		},
	)

	return Selection{WeakItems: weakItems, ReviewItems: reviewItems}
}

// selectBucket is one independent bucket pass: filter, rank, take.
// Ranking is stable, so ties keep their original pool order.
func selectBucket(items []models.LearningItem, count int, keep func(models.LearningItem) bool, less func(a, b models.LearningItem) bool) []models.LearningItem {
	if count < 0 {
		count = 0
	}

	bucket := make([]models.LearningItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			bucket = append(bucket, item)
		}
	}

	sort.SliceStable(bucket, func(i, j int) bool {
		return less(bucket[i], bucket[j])
	})

	if len(bucket) > count {
		bucket = bucket[:count]
	}
	return bucket
}

// reviewTime orders the review queue: items never reviewed sort as
// oldest and come first
func reviewTime(item models.LearningItem) time.Time {
	if item.LastReviewedAt == nil {
		return time.Time{}
	}
	return *item.LastReviewedAt
}
