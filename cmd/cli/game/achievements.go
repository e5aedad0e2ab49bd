package game

import (
	"fmt"
	"gilmoremanor/internal/achievements"
	"gilmoremanor/internal/game"
	"gilmoremanor/internal/save"

	"github.com/spf13/cobra"
)

var Achievements = &cobra.Command{
	Use:     "achievements",
	Short:   "Show achievements and rarity statistics",
	GroupID: Group.ID,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		// Live progress comes from the autosaved state when there is one.
		state := game.NewState(a.cat)
		if loaded, err := a.saves.Load(ctx, save.AutoSlot); err != nil {
			return err
		} else if loaded != nil {
			state = loaded.State
		}
		saveCount, err := a.saves.SaveCount(ctx)
		if err != nil {
			return err
		}
		board, err := a.board.Load(ctx)
		if err != nil {
			return err
		}

		list, err := a.achievements.List(ctx, achievements.Snapshot{
			State: state,
			Aux: achievements.Aux{
				SaveCount:        saveCount,
				BoardConnections: len(board.Connections),
				BoardTheories:    len(board.Theories),
			},
		})
		if err != nil {
			return err
		}

		for _, ach := range list {
			marker := " "
			if ach.Unlocked {
				marker = "x"
			}
			fmt.Printf("  [%s] %-20s %-10s %s", marker, ach.Name, ach.Rarity, ach.Description)
			if ach.MaxProgress > 0 && !ach.Unlocked {
				fmt.Printf(" (%d/%d)", ach.Progress, ach.MaxProgress)
			}
			fmt.Println()
		}

		stats := achievements.Summarize(list)
		fmt.Printf("\nUnlocked %d of %d (%d%%)\n", stats.Unlocked, stats.Total, stats.Percentage)
		for _, line := range rarityLines(stats) {
			fmt.Println(line)
		}
		return nil
	},
}

// rarityOrder fixes the presentation order of the tiers; ranging over the
// stats map would reshuffle the output on every run.
var rarityOrder = []achievements.Rarity{
	achievements.RarityCommon,
	achievements.RarityRare,
	achievements.RarityEpic,
	achievements.RarityLegendary,
}

func rarityLines(stats achievements.Stats) []string {
	lines := make([]string, 0, len(rarityOrder))
	for _, rarity := range rarityOrder {
		tally, ok := stats.ByRarity[rarity]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %d/%d", rarity, tally.Unlocked, tally.Total))
	}
	return lines
}
