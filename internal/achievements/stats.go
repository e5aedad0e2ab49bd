package achievements

import "math"

// RarityStats is the unlock tally for one rarity tier.
type RarityStats struct {
	Total    int
	Unlocked int
}

// Stats summarises unlock progress for presentation.
type Stats struct {
	Total      int
	Unlocked   int
	Percentage int
	ByRarity   map[Rarity]RarityStats
}

// Summarize tallies a list of achievements into overall and per-rarity
// unlock counts.
func Summarize(achievements []Achievement) Stats {
	stats := Stats{
		ByRarity: map[Rarity]RarityStats{},
	}
	for _, achievement := range achievements {
		stats.Total++
		rarity := stats.ByRarity[achievement.Rarity]
		rarity.Total++
		if achievement.Unlocked {
			stats.Unlocked++
			rarity.Unlocked++
		}
		stats.ByRarity[achievement.Rarity] = rarity
	}
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Unlocked) / float64(stats.Total) * 100))
	}
	return stats
}
