package game

import "gilmoremanor/internal/catalog"

// InvestigationHints produces next-step guidance from the current state.
// Returns a single "ready" hint when nothing else applies.
func InvestigationHints(s *State, cat *catalog.Catalog) []string {
	var hints []string

	if CriticalFound(s, cat) < minCriticalAccuse {
		hints = append(hints, "Search the rooms more thoroughly, key evidence is still missing.")
	}
	if TrustScore(s) < 50 {
		hints = append(hints, "Build better relationships with the witnesses through conversation.")
	}
	if len(s.EvidenceFound) < 4 {
		hints = append(hints, "You have only found a few pieces of evidence, keep looking.")
	}
	if len(s.Conversations) < 8 {
		hints = append(hints, "Talk more with each character to understand their motives.")
	}
	for _, id := range s.EvidenceFound {
		if item, ok := cat.Evidence(id); ok && item.RedHerring {
			hints = append(hints, "Be careful, some of your evidence may be misleading.")
			break
		}
	}

	if len(hints) == 0 {
		return []string{"You are ready to make an accusation."}
	}
	return hints
}
