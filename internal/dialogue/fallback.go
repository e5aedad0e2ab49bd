package dialogue

import (
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/game"
)

// FallbackReply returns a canned in-character line for when the completion
// API fails. The bracket thresholds match the prompt conditioning so the
// tone stays consistent across real and canned replies.
func FallbackReply(cat *catalog.Catalog, s *game.State, characterID string) string {
	char, ok := cat.Character(characterID)
	if !ok {
		return "..."
	}
	trust := s.TrustLevel(characterID)
	switch {
	case trust < lowTrustThreshold:
		if char.LowTrustLine != "" {
			return char.LowTrustLine
		}
		return "I have nothing to say to you, detective."
	case trust >= highTrustThreshold:
		if char.HighTrustLine != "" {
			return char.HighTrustLine
		}
		return "I want to help you find the truth, detective. Ask me anything."
	default:
		return "I'm not sure what you want me to say about that."
	}
}
