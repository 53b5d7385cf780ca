package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			orch, days, err := openOrchestrator()
			if err != nil {
				return err
			}

			// The day clock and orchestrator loop keep the store fresh
			// across midnight while the board is open.
			go days.Run(ctx)
			defer days.Stop()
			go func() { _ = orch.Run(ctx, days.Changes()) }()

			return tui.RunBoard(ctx, orch, cmd.OutOrStdout())
		},
	}
}
