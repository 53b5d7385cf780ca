package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/ui"
)

func newMoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood <1-5>",
		Short: "Log today's mood",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("a rating between 1 and 5 is required")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > 5 {
				return errors.New("rating must be an integer between 1 and 5")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			rating, _ := strconv.Atoi(args[0])
			if err := orch.LogMood(ctx, rating); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Mood logged: %s %d/5\n",
				ui.Good.Render(ui.IconDone), ui.MoodFace(rating), rating)
			return nil
		},
	}
}
