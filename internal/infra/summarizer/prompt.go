package summarizer

import (
	"fmt"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
)

// SystemInstruction sets the tone for every summary request.
const SystemInstruction = "You are a concise and helpful assistant that creates accurate summaries of documents."

// Prompt is a structured request for the language model.
type Prompt struct {
	System string
	User   string
}

// Targets maps each length tier to a target word count.
type Targets map[entity.LengthTier]int

// TargetsFromConfig converts configured tier targets.
func TargetsFromConfig(t config.TierTargets) Targets {
	return Targets{
		entity.TierShort:  t.Short,
		entity.TierMedium: t.Medium,
		entity.TierLong:   t.Long,
	}
}

// DefaultTargets returns the built-in word counts (50/150/300).
func DefaultTargets() Targets {
	return TargetsFromConfig(config.Default().Summarizer.Targets)
}

// WordCount returns the target for tier. Unknown tiers fall back to medium.
func (t Targets) WordCount(tier entity.LengthTier) int {
	if n, ok := t[tier]; ok {
		return n
	}
	return t[entity.TierMedium]
}

// Instruction returns the length instruction for tier.
func (t Targets) Instruction(tier entity.LengthTier) string {
	n := t.WordCount(tier)
	switch tier {
	case entity.TierShort:
		return fmt.Sprintf("Create a very brief summary of approximately %d words.", n)
	case entity.TierLong:
		return fmt.Sprintf("Create a comprehensive summary of approximately %d words.", n)
	default:
		return fmt.Sprintf("Create a moderate summary of approximately %d words.", n)
	}
}

// BuildPrompt embeds the tier instruction and the full input text.
func BuildPrompt(text string, tier entity.LengthTier, targets Targets) Prompt {
	return Prompt{
		System: SystemInstruction,
		User:   fmt.Sprintf("%s\n\nText to summarize:\n%s\n\nSummary:", targets.Instruction(tier), text),
	}
}
