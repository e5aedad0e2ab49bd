package game

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Saves = &cobra.Command{
	Use:     "saves [delete <slot>]",
	Short:   "List or delete save slots",
	GroupID: Group.ID,
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		if len(args) == 2 && args[0] == "delete" {
			if err := a.saves.Delete(ctx, args[1]); err != nil {
				return err
			}
			fmt.Printf("Deleted slot %s.\n", args[1])
			return nil
		}

		slots, err := a.saves.Slots(ctx)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			if slot.Empty {
				fmt.Printf("  %s: empty\n", slot.ID)
				continue
			}
			fmt.Printf("  %s: %s, %d evidence, %d%% progress, saved %s\n",
				slot.ID, slot.Name, slot.EvidenceCount, slot.Progress,
				slot.LastSaved.Format("2006-01-02 15:04"))
		}
		return nil
	},
}
