// Package leveling derives a CEFR proficiency estimate from the
// accumulated learning items of a user.
package leveling

import (
	"math"

	"github.com/example/polybot/pkg/models"
)

// Ordered CEFR levels from lowest to highest
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// Effective vocabulary size required to hold each level
var levelThresholds = map[string]float64{
	"A1": 100,
	"A2": 500,
	"B1": 1000,
	"B2": 2000,
	"C1": 4000,
	"C2": 8000,
}

// LevelStats is a recomputed-on-demand proficiency snapshot.
// NextLevel is empty once the maximum level is reached.
type LevelStats struct {
	CurrentLevel    string  `json:"current_level"`
	NextLevel       string  `json:"next_level"`
	ProgressPercent int     `json:"progress_percent"` // 0-100
	TotalItems      int     `json:"total_items"`
	AverageMastery  int     `json:"average_mastery"`
	EffectiveVocab  float64 `json:"effective_vocab"`
}

// CalculateLevelStats estimates the user's level from an item collection.
//
// The effective vocabulary count conflates breadth and depth on purpose:
// items with low mastery are only partially counted. Progress is capped
// at 99 below the terminal level, so 100% is reserved for reaching C2.
func CalculateLevelStats(items []models.LearningItem) LevelStats {
	totalItems := len(items)

	averageMastery := 0.0
	if totalItems > 0 {
		sum := 0.0
		for _, item := range items {
			sum += item.MasteryScore
		}
		averageMastery = sum / float64(totalItems)
	}

	effectiveVocab := float64(totalItems) * (averageMastery / 100)

	currentLevel := "A1"
	nextLevel := "A2"
	progress := 0.0

	for i, level := range Levels {
		if effectiveVocab < levelThresholds[level] {
			break
		}
		currentLevel = level
		if i+1 < len(Levels) {
			nextLevel = Levels[i+1]
		} else {
			nextLevel = ""
		}
	}

	if nextLevel == "" {
		// Max level reached
		progress = 100
	} else if effectiveVocab < levelThresholds["A1"] {
		// Not at the first threshold yet: measure progress toward A1 itself
		currentLevel = "A1"
		nextLevel = "A1"
		progress = math.Min(99, effectiveVocab/levelThresholds["A1"]*100)
	} else {
		currentThreshold := levelThresholds[currentLevel]
		nextThreshold := levelThresholds[nextLevel]
		progress = math.Min(99, (effectiveVocab-currentThreshold)/(nextThreshold-currentThreshold)*100)
	}

	return LevelStats{
		CurrentLevel:    currentLevel,
		NextLevel:       nextLevel,
		ProgressPercent: int(math.Round(progress)),
		TotalItems:      totalItems,
		AverageMastery:  int(math.Round(averageMastery)),
		EffectiveVocab:  effectiveVocab,
	}
}
