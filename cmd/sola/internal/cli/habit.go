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

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage daily habits",
	}

	cmd.AddCommand(newHabitAddCmd(), newHabitCheckCmd(), newHabitRmCmd(), newHabitLsCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("habit name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			if err := orch.AddHabit(ctx, name); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLoop+" Habit added:")+" "+name)
			return nil
		},
	}
}

func newHabitCheckCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Mark a habit done for today",
		Args:  requireID("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.ToggleHabit(ctx, args[0], !undo); err != nil {
				return err
			}

			if undo {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Habit unchecked."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Habit checked."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Uncheck instead")
	return cmd
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit",
		Args:  requireID("habit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.DeleteHabit(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Habit deleted."))
			return nil
		},
	}
}

func newHabitLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.Refresh(ctx, syncer.DomainHabits); err != nil {
				return err
			}

			habits := orch.Store().Habits()
			if habits.State != store.Loaded || len(habits.Value) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no habits)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconLoop+" Habits"))
			for _, h := range habits.Value {
				line := fmt.Sprintf("- %s  %s", h.Name, ui.Muted.Render(h.ID))
				if !h.Active {
					line += ui.Muted.Render(" (inactive)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// requireID validates the single positional id argument.
func requireID(kind string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 || args[0] == "" {
			return fmt.Errorf("%s id is required", kind)
		}
		return nil
	}
}
