// Package specgen builds a structured generation spec from selected
// learning items and renders it into the instruction document handed
// to an external generative system.
package specgen

import (
	"fmt"
	"strings"

	"github.com/example/polybot/internal/speechrate"
	"github.com/example/polybot/pkg/models"
)

// SlotType marks why an item was included in a spec
type SlotType string

const (
	SlotWeak   SlotType = "weak"
	SlotReview SlotType = "review"
	SlotNew    SlotType = "new"
	SlotFree   SlotType = "free"
)

// Hard cap on included items to prevent prompt bloat
const maxSlots = 8

// Slot is one concrete inclusion requirement for the generator
type Slot struct {
	Type        SlotType            `json:"type"`
	Item        models.LearningItem `json:"item"`
	Instruction string              `json:"instruction"`
}

// LevelConfig carries the derived pacing and complexity guidance
type LevelConfig struct {
	SentenceCount int    `json:"sentence_count"`
	Complexity    string `json:"complexity"`
	Details       string `json:"details"`
}

// ScriptSpec is the generation intent for one request. It is built
// fresh per request and never persisted.
type ScriptSpec struct {
	Language        string      `json:"language"`
	Topic           string      `json:"topic"`
	BaseScript      string      `json:"base_script,omitempty"`
	Level           string      `json:"level"`
	Persona         string      `json:"persona,omitempty"`
	DurationSeconds int         `json:"duration_seconds"`
	EstimatedAmount int         `json:"estimated_amount"`
	LevelConfig     LevelConfig `json:"level_config"`
	Slots           []Slot      `json:"slots"`
}

// Config is the per-request generation configuration
type Config struct {
	Level           string // CEFR tag A1-C2
	Persona         string // optional style to imitate
	BaseScript      string // optional seed text
	DurationSeconds int
}

// Generate composes a spec from the selected buckets. Weak items are
// concatenated before review items, so when the combined list is
// truncated to the slot cap, weak items are never dropped in favor of
// review items.
func Generate(language, topic string, weakItems, reviewItems []models.LearningItem, config Config) ScriptSpec {
	weakIDs := make(map[string]bool, len(weakItems))
	for _, item := range weakItems {
		weakIDs[item.ID] = true
	}

	combined := make([]models.LearningItem, 0, len(weakItems)+len(reviewItems))
	combined = append(combined, weakItems...)
	combined = append(combined, reviewItems...)
	if len(combined) > maxSlots {
		combined = combined[:maxSlots]
	}

	slots := make([]Slot, 0, len(combined))
	for _, item := range combined {
		slot := Slot{Type: SlotReview, Item: item}
		if weakIDs[item.ID] {
			slot.Type = SlotWeak
			slot.Instruction = fmt.Sprintf("MUST CORRECTLY USE: %q (%s) - Focus on natural context", item.Head, item.Tail)
		} else {
			slot.Instruction = fmt.Sprintf("Naturally integrate: %q (%s)", item.Head, item.Tail)
		}
		slots = append(slots, slot)
	}

	duration := config.DurationSeconds
	if duration < 0 {
		duration = 0
	}

	estimatedAmount := int(float64(duration) * speechrate.RateFor(language))

	sentenceCount := duration/4 + len(slots)/2
	if sentenceCount < 3 {
		sentenceCount = 3
	}

	return ScriptSpec{
		Language:        language,
		Topic:           topic,
		BaseScript:      config.BaseScript,
		Level:           config.Level,
		Persona:         config.Persona,
		DurationSeconds: config.DurationSeconds,
		EstimatedAmount: estimatedAmount,
		LevelConfig: LevelConfig{
			SentenceCount: sentenceCount,
			Complexity:    fmt.Sprintf("CEFR %s", config.Level),
			Details:       detailsFor(language, config.Level),
		},
		Slots: slots,
	}
}

// RenderToPrompt assembles the final instruction document. The section
// order and the JSON output contract are fixed: downstream generative
// consumers are sensitive to both.
func RenderToPrompt(spec ScriptSpec) string {
	var b strings.Builder

	if spec.Persona != "" {
		fmt.Fprintf(&b, "【PERSONA / ROLE】\nYou are **%s**. Mimic their speaking style, catchphrases, tone, and worldview perfectly. Speak exactly as %s would in this situation.\n\n", spec.Persona, spec.Persona)
	} else {
		b.WriteString("【ROLE】\nYou are an expert language teacher and natural scriptwriter.\n\n")
	}

	fmt.Fprintf(&b, "Language: %s\n", spec.Language)
	fmt.Fprintf(&b, "Topic: %s\n", spec.Topic)
	b.WriteString("Goal: Create a natural dialogue script for speaking practice.\n")

	if spec.BaseScript != "" {
		fmt.Fprintf(&b, "\n【BASE CONTENT】\nUse the following script as the foundation for topics and flow:\n---\n%s\n---\n", spec.BaseScript)
	}

	b.WriteString("\n【Constraints】\n")
	fmt.Fprintf(&b, "1. Target Duration: Approx **%d seconds** (Target length: **%d** %s).\n",
		spec.DurationSeconds, spec.EstimatedAmount, speechrate.UnitFor(spec.Language))
	fmt.Fprintf(&b, "2. Proficiency Level: %s (%s).\n", spec.LevelConfig.Complexity, spec.LevelConfig.Details)
	b.WriteString("3. **MANDATORY INCLUSIONS**: You MUST naturally include the following items:\n")
	for _, slot := range spec.Slots {
		fmt.Fprintf(&b, "- [%s] %s\n", strings.ToUpper(string(slot.Type)), slot.Instruction)
	}
	fmt.Fprintf(&b, "4. **CHALLENGE**: Additionally, introduce 2-3 new advanced expressions suitable for %s level with brief explanations.\n", spec.LevelConfig.Complexity)

	persona := spec.Persona
	if persona == "" {
		persona = "a native speaker"
	}
	b.WriteString("\n【Output Format】\n")
	b.WriteString("Output ONLY JSON. Do not include markdown code blocks.\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"Title of script\",\n")
	b.WriteString("  \"script\": [\n")
	b.WriteString("    {\"speaker\": \"A\", \"text\": \"...\", \"trans\": \"English translation\"},\n")
	b.WriteString("    {\"speaker\": \"B\", \"text\": \"...\", \"trans\": \"...\"}\n")
	b.WriteString("  ],\n")
	b.WriteString("  \"new_expressions\": [\n")
	b.WriteString("    {\"expression\": \"...\", \"meaning\": \"...\", \"usage\": \"...\"}\n")
	b.WriteString("  ],\n")
	fmt.Fprintf(&b, "  \"notes\": \"Advice on how to sound like %s\"\n", persona)
	b.WriteString("}\n")

	return b.String()
}
