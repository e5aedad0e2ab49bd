// Package achievements watches game state transitions and unlocks
// achievements edge-triggered: a definition fires only when its predicate
// flips from false to true between two observed snapshots. Unlock state is
// persisted with a timestamp and never re-evaluated; progress for locked
// achievements is recomputed live and never stored.
package achievements

import (
	"gilmoremanor/internal/game"
	"time"
)

// Rarity is cosmetic metadata with no gameplay effect.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Definition is the static part of an achievement. MaxProgress of zero
// means the achievement is a plain boolean.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Rarity      Rarity
	MaxProgress int
}

// Achievement is a definition plus its per-player unlock state.
type Achievement struct {
	Definition
	Unlocked   bool
	UnlockedAt time.Time
	Progress   int
}

// Aux carries the counters that live outside the game state: saves made,
// and the deduction board totals.
type Aux struct {
	SaveCount        int
	BoardConnections int
	BoardTheories    int
}

type checkFunc func(s *game.State, aux Aux) bool

type progressFunc func(s *game.State, aux Aux) int

type definition struct {
	Definition
	check    checkFunc
	progress progressFunc
}

const suspectCount = 4

func everyTrustAtLeast(s *game.State, threshold int) bool {
	if len(s.Trust) < suspectCount {
		return false
	}
	for _, trust := range s.Trust {
		if trust < threshold {
			return false
		}
	}
	return true
}

// registry is the fixed set of achievement definitions, easiest first.
var registry = []definition{
	{
		Definition: Definition{
			ID:          "first_evidence",
			Name:        "Rookie Detective",
			Description: "Find your first piece of evidence",
			Icon:        "🔍",
			Rarity:      RarityCommon,
		},
		check: func(s *game.State, _ Aux) bool { return len(s.EvidenceFound) >= 1 },
	},
	{
		Definition: Definition{
			ID:          "first_conversation",
			Name:        "First Encounter",
			Description: "Talk to a character for the first time",
			Icon:        "💬",
			Rarity:      RarityCommon,
		},
		check: func(s *game.State, _ Aux) bool { return len(s.Conversations) >= 1 },
	},
	{
		Definition: Definition{
			ID:          "evidence_hunter",
			Name:        "Evidence Hunter",
			Description: "Find all 8 pieces of evidence in the case",
			Icon:        "🏆",
			Rarity:      RarityRare,
			MaxProgress: 8,
		},
		check:    func(s *game.State, _ Aux) bool { return len(s.EvidenceFound) >= 8 },
		progress: func(s *game.State, _ Aux) int { return len(s.EvidenceFound) },
	},
	{
		Definition: Definition{
			ID:          "conversation_master",
			Name:        "Master Interrogator",
			Description: "Hold 15 or more conversations with the characters",
			Icon:        "🎭",
			Rarity:      RarityRare,
			MaxProgress: 15,
		},
		check:    func(s *game.State, _ Aux) bool { return len(s.Conversations) >= 15 },
		progress: func(s *game.State, _ Aux) int { return len(s.Conversations) },
	},
	{
		Definition: Definition{
			ID:          "trust_builder",
			Name:        "Trusted Confidant",
			Description: "Reach 80%+ trust with every living character",
			Icon:        "💝",
			Rarity:      RarityEpic,
		},
		check: func(s *game.State, _ Aux) bool { return everyTrustAtLeast(s, 80) },
	},
	{
		Definition: Definition{
			ID:          "room_explorer",
			Name:        "Manor Explorer",
			Description: "Search all 6 rooms of the manor",
			Icon:        "🏠",
			Rarity:      RarityCommon,
			MaxProgress: 6,
		},
		check:    func(s *game.State, _ Aux) bool { return s.RoomsSearched() >= 6 },
		progress: func(s *game.State, _ Aux) int { return s.RoomsSearched() },
	},
	{
		Definition: Definition{
			ID:          "detective_persistence",
			Name:        "Dogged Persistence",
			Description: "Make 20 search attempts, failures included",
			Icon:        "🔄",
			Rarity:      RarityRare,
			MaxProgress: 20,
		},
		check:    func(s *game.State, _ Aux) bool { return s.TotalSearchAttempts() >= 20 },
		progress: func(s *game.State, _ Aux) int { return s.TotalSearchAttempts() },
	},
	{
		Definition: Definition{
			ID:          "smooth_talker",
			Name:        "Smooth Talker",
			Description: "Never let anyone's trust drop below 30%",
			Icon:        "🗣️",
			Rarity:      RarityEpic,
		},
		check: func(s *game.State, _ Aux) bool { return everyTrustAtLeast(s, 30) },
	},
	{
		Definition: Definition{
			ID:          "save_master",
			Name:        "Time Manager",
			Description: "Save the game 3 times",
			Icon:        "💾",
			Rarity:      RarityCommon,
			MaxProgress: 3,
		},
		check:    func(_ *game.State, aux Aux) bool { return aux.SaveCount >= 3 },
		progress: func(_ *game.State, aux Aux) int { return aux.SaveCount },
	},
	{
		Definition: Definition{
			ID:          "perfect_detective",
			Name:        "Perfect Detective",
			Description: "Collect 100% of the evidence with 70%+ trust across the board",
			Icon:        "🎯",
			Rarity:      RarityLegendary,
		},
		check: func(s *game.State, _ Aux) bool {
			return len(s.EvidenceFound) >= 8 && everyTrustAtLeast(s, 70)
		},
	},
	{
		Definition: Definition{
			ID:          "deduction_master",
			Name:        "Master of Deduction",
			Description: "Draw 5 or more connections on the deduction board",
			Icon:        "🧠",
			Rarity:      RarityRare,
			MaxProgress: 5,
		},
		check:    func(_ *game.State, aux Aux) bool { return aux.BoardConnections >= 5 },
		progress: func(_ *game.State, aux Aux) int { return aux.BoardConnections },
	},
	{
		Definition: Definition{
			ID:          "theory_builder",
			Name:        "Theory Builder",
			Description: "Put together 3 different theories",
			Icon:        "💭",
			Rarity:      RarityEpic,
			MaxProgress: 3,
		},
		check:    func(_ *game.State, aux Aux) bool { return aux.BoardTheories >= 3 },
		progress: func(_ *game.State, aux Aux) int { return aux.BoardTheories },
	},
}

// Definitions returns the static registry in unlock-difficulty order.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def.Definition)
	}
	return defs
}

func clampProgress(progress, maxProgress int) int {
	if progress < 0 {
		return 0
	}
	if progress > maxProgress {
		return maxProgress
	}
	return progress
}
