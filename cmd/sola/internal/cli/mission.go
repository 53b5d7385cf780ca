package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newMissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage today's mission",
	}

	cmd.AddCommand(newMissionSaveCmd(), newMissionDoneCmd())
	return cmd
}

func newMissionSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <text>",
		Short: "Set or replace today's mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("mission text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if err := orch.SaveMission(ctx, text); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconTarget+" Mission saved:")+" "+text)
			return nil
		},
	}
}

func newMissionDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done",
		Short: "Toggle today's mission done",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			// The toggle needs the current flag; fetch it first.
			if err := orch.Refresh(ctx, syncer.DomainMission); err != nil {
				return err
			}
			if orch.Store().Mission().State != store.Loaded {
				return errors.New("no mission set for today (sola mission save \"…\")")
			}
			if err := orch.ToggleMissionDone(ctx, ""); err != nil {
				return err
			}

			m := orch.Store().Mission()
			if m.State == store.Loaded && m.Value.Done {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Mission complete."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Mission reopened."))
			}
			return nil
		},
	}
}
