package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage the active day",
	}

	cmd.AddCommand(newDayCompleteCmd())
	return cmd
}

func newDayCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark today complete and collect the day bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.CompleteDay(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconSpark+" "+ui.BadgeDayDone))
			if xp := orch.Store().XP(); xp.State == store.Loaded {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d day(s)", xp.Value.Streak)))
			}
			return nil
		},
	}
}
