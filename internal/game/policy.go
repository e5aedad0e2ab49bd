package game

import (
	"gilmoremanor/internal/catalog"
	"strings"
)

// Action is a player conversational move with a fixed trust effect.
type Action string

const (
	ActionChat            Action = "chat"
	ActionBuildTrust      Action = "trust"
	ActionInterrogate     Action = "interrogate"
	ActionAccuse          Action = "accuse"
	ActionPresentEvidence Action = "present_evidence"
)

// EmotionFor applies the keyword heuristic on the player's raw input text:
// accusatory words turn a suspect defensive, reassuring words calm them
// down. It is a crude substring match, isolated here so it can be swapped
// for a smarter classifier without touching the rest of the engine.
func EmotionFor(input string) (Emotion, bool) {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "accuse") || strings.Contains(lower, "guilty") {
		return EmotionDefensive, true
	}
	if strings.Contains(lower, "trust") || strings.Contains(lower, "help") {
		return EmotionCalm, true
	}
	return "", false
}

// TrustChange is the trust delta for a player action towards a character.
// Presenting evidence that implicates the character costs trust; showing
// something irrelevant buys a little goodwill.
func TrustChange(cat *catalog.Catalog, action Action, characterID, evidenceShown string) int {
	switch action {
	case ActionBuildTrust:
		return 10
	case ActionInterrogate:
		return -5
	case ActionAccuse:
		return -20
	case ActionPresentEvidence:
		if item, ok := cat.Evidence(evidenceShown); ok && item.RelatedCharacter == characterID {
			return -10
		}
		return 5
	case ActionChat:
		return 1
	default:
		return 0
	}
}
