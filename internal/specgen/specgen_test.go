package specgen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/example/polybot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_TimingForEnglish(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{Level: "B1", DurationSeconds: 60})

	// 60s * 2.5 words/s
	assert.Equal(t, 150, spec.EstimatedAmount)
	// max(3, 60/4 + 0/2)
	assert.Equal(t, 15, spec.LevelConfig.SentenceCount)
	assert.Equal(t, "CEFR B1", spec.LevelConfig.Complexity)
	assert.Empty(t, spec.Slots)
}

func TestGenerate_TimingForJapanese(t *testing.T) {
	spec := Generate("JP", "Daily life", nil, nil, Config{Level: "B1", DurationSeconds: 60})

	// 60s * 5.5 chars/s
	assert.Equal(t, 330, spec.EstimatedAmount)
}

func TestGenerate_SentenceCountFloor(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{Level: "A1", DurationSeconds: 4})

	assert.Equal(t, 3, spec.LevelConfig.SentenceCount)
}

func TestGenerate_NegativeDurationClampsToMinimums(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{Level: "A1", DurationSeconds: -30})

	assert.Equal(t, 0, spec.EstimatedAmount)
	assert.Equal(t, 3, spec.LevelConfig.SentenceCount)
}

func TestGenerate_SlotCapKeepsWeakOverReview(t *testing.T) {
	weak := makeItems("w", 5)
	review := makeItems("r", 6)

	spec := Generate("EN", "Travel", weak, review, Config{Level: "B1", DurationSeconds: 60})

	require.Len(t, spec.Slots, 8)
	weakCount, reviewCount := 0, 0
	for _, slot := range spec.Slots {
		switch slot.Type {
		case SlotWeak:
			weakCount++
		case SlotReview:
			reviewCount++
		}
	}
	assert.Equal(t, 5, weakCount, "no weak item may be evicted by a review item")
	assert.Equal(t, 3, reviewCount)
}

func TestGenerate_InstructionsDifferByType(t *testing.T) {
	weak := []models.LearningItem{{ID: "w1", Head: "stumble", Tail: "つまずく"}}
	review := []models.LearningItem{{ID: "r1", Head: "recall", Tail: "思い出す"}}

	spec := Generate("EN", "Travel", weak, review, Config{Level: "B1", DurationSeconds: 60})

	require.Len(t, spec.Slots, 2)
	assert.Equal(t, SlotWeak, spec.Slots[0].Type)
	assert.Contains(t, spec.Slots[0].Instruction, "MUST CORRECTLY USE")
	assert.Contains(t, spec.Slots[0].Instruction, "stumble")
	assert.Equal(t, SlotReview, spec.Slots[1].Type)
	assert.Contains(t, spec.Slots[1].Instruction, "Naturally integrate")
}

func TestGenerate_DetailsFallbackChain(t *testing.T) {
	// ZH only tabulates B1, so B2 falls back to the English entry
	spec := Generate("ZH", "Food", nil, nil, Config{Level: "B2", DurationSeconds: 30})
	assert.Equal(t, levelDetails["EN"]["B2"], spec.LevelConfig.Details)

	// C2 is tabulated nowhere, so even English falls to the generic text
	spec = Generate("EN", "Food", nil, nil, Config{Level: "C2", DurationSeconds: 30})
	assert.Equal(t, genericDetails, spec.LevelConfig.Details)

	// Unknown language uses the English table
	spec = Generate("FR", "Food", nil, nil, Config{Level: "A1", DurationSeconds: 30})
	assert.Equal(t, levelDetails["EN"]["A1"], spec.LevelConfig.Details)
}

func TestGenerate_PassesThroughPersonaAndBaseScript(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{
		Level:           "B1",
		Persona:         "a cheerful tour guide",
		BaseScript:      "Welcome to Kyoto.",
		DurationSeconds: 60,
	})

	assert.Equal(t, "a cheerful tour guide", spec.Persona)
	assert.Equal(t, "Welcome to Kyoto.", spec.BaseScript)
}

func TestRenderToPrompt_ContainsOutputContract(t *testing.T) {
	spec := Generate("EN", "Travel", makeItems("w", 2), nil, Config{Level: "B1", DurationSeconds: 60})
	prompt := RenderToPrompt(spec)

	for _, field := range []string{`"title"`, `"script"`, `"new_expressions"`, `"notes"`} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "MANDATORY INCLUSIONS")
	assert.Contains(t, prompt, "[WEAK]")
	assert.Contains(t, prompt, "Topic: Travel")
}

func TestRenderToPrompt_PersonaNearTop(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{
		Level:           "B1",
		Persona:         "David Attenborough",
		DurationSeconds: 60,
	})
	prompt := RenderToPrompt(spec)

	idx := strings.Index(prompt, "David Attenborough")
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 200, "persona should appear in the opening directive")
}

func TestRenderToPrompt_DefaultRoleWithoutPersona(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{Level: "B1", DurationSeconds: 60})
	prompt := RenderToPrompt(spec)

	assert.Contains(t, prompt, "expert language teacher")
	assert.Contains(t, prompt, "a native speaker")
}

func TestRenderToPrompt_UnitLabelByLanguage(t *testing.T) {
	jp := RenderToPrompt(Generate("JP", "Travel", nil, nil, Config{Level: "B1", DurationSeconds: 60}))
	assert.Contains(t, jp, "**330** characters")

	en := RenderToPrompt(Generate("EN", "Travel", nil, nil, Config{Level: "B1", DurationSeconds: 60}))
	assert.Contains(t, en, "**150** words")
}

func TestRenderToPrompt_EmbedsBaseScript(t *testing.T) {
	spec := Generate("EN", "Travel", nil, nil, Config{
		Level:           "B1",
		BaseScript:      "Once upon a time in Osaka.",
		DurationSeconds: 60,
	})
	prompt := RenderToPrompt(spec)

	assert.Contains(t, prompt, "【BASE CONTENT】")
	assert.Contains(t, prompt, "Once upon a time in Osaka.")

	plain := RenderToPrompt(Generate("EN", "Travel", nil, nil, Config{Level: "B1", DurationSeconds: 60}))
	assert.NotContains(t, plain, "【BASE CONTENT】")
}

func makeItems(prefix string, count int) []models.LearningItem {
	items := make([]models.LearningItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, models.LearningItem{
			ID:   fmt.Sprintf("%s%d", prefix, i),
			Head: fmt.Sprintf("head-%s%d", prefix, i),
			Tail: fmt.Sprintf("tail-%s%d", prefix, i),
		})
	}
	return items
}
