package game

import (
	"gilmoremanor/internal/achievements"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRarityLines_StableOrder(t *testing.T) {
	t.Parallel()
	stats := achievements.Stats{ByRarity: map[achievements.Rarity]achievements.RarityStats{
		achievements.RarityLegendary: {Total: 1},
		achievements.RarityCommon:    {Total: 4, Unlocked: 2},
		achievements.RarityEpic:      {Total: 3, Unlocked: 1},
		achievements.RarityRare:      {Total: 4},
	}}

	want := []string{
		"  common: 2/4",
		"  rare: 0/4",
		"  epic: 1/3",
		"  legendary: 0/1",
	}
	for i := 0; i < 10; i++ {
		require.Equal(t, want, rarityLines(stats))
	}
}

func TestRarityLines_SkipsAbsentTiers(t *testing.T) {
	t.Parallel()
	stats := achievements.Stats{ByRarity: map[achievements.Rarity]achievements.RarityStats{
		achievements.RarityRare: {Total: 2, Unlocked: 1},
	}}
	require.Equal(t, []string{"  rare: 1/2"}, rarityLines(stats))
}
